package script

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danho/pvfield/internal/domain"
)

func createTestItem() domain.Item {
	return domain.Item{
		ID:   "item_1",
		Type: domain.ItemTypeIssue,
		FieldValues: map[string]any{
			"Status": "Done",
			"Points": float64(3),
		},
	}
}

func createTestContext() map[string]any {
	return map[string]any{
		"eventName": "issues",
		"actor":     "octocat",
		"payload": map[string]any{
			"issue": map[string]any{"node_id": "I_abc123", "number": float64(74)},
		},
	}
}

func TestEvaluate_Literal(t *testing.T) {
	eval := New(time.Second)

	result, err := eval.Evaluate(context.Background(), createTestContext(), createTestItem(), `"Hello, World!"`)

	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", result)
}

func TestEvaluate_ContextBinding(t *testing.T) {
	eval := New(time.Second)

	result, err := eval.Evaluate(context.Background(), createTestContext(), createTestItem(), `context.eventName`)

	require.NoError(t, err)
	assert.Equal(t, "issues", result)
}

func TestEvaluate_ItemBinding(t *testing.T) {
	eval := New(time.Second)

	result, err := eval.Evaluate(context.Background(), createTestContext(), createTestItem(), `item.fieldValues["Status"] == "Done"`)

	require.NoError(t, err)
	assert.Equal(t, true, result)
}

func TestEvaluate_ComputedValue(t *testing.T) {
	eval := New(time.Second)

	result, err := eval.Evaluate(context.Background(), createTestContext(), createTestItem(), `item.fieldValues["Points"] * 2`)

	require.NoError(t, err)
	assert.Equal(t, float64(6), result)
}

func TestEvaluate_PayloadAccess(t *testing.T) {
	eval := New(time.Second)

	result, err := eval.Evaluate(context.Background(), createTestContext(), createTestItem(), `context.payload.issue.node_id`)

	require.NoError(t, err)
	assert.Equal(t, "I_abc123", result)
}

// Only context and item are bound; a free identifier is an error, not nil.
func TestEvaluate_UndefinedIdentifier(t *testing.T) {
	eval := New(time.Second)

	_, err := eval.Evaluate(context.Background(), createTestContext(), createTestItem(), `bogus + 1`)

	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestEvaluate_SyntaxError(t *testing.T) {
	eval := New(time.Second)

	_, err := eval.Evaluate(context.Background(), createTestContext(), createTestItem(), `1 +`)

	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestEvaluate_CanceledContext(t *testing.T) {
	eval := New(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eval.Evaluate(ctx, createTestContext(), createTestItem(), `1 + 1`)

	// The run may still win the race against an already-canceled
	// context; either outcome must not hang.
	if err != nil {
		assert.ErrorIs(t, err, ErrEvaluation)
	}
}

func TestNew_NonPositiveTimeout(t *testing.T) {
	eval := New(0)
	assert.Equal(t, DefaultTimeout, eval.timeout)

	eval = New(-time.Second)
	assert.Equal(t, DefaultTimeout, eval.timeout)
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy(0))
	assert.False(t, Truthy(int64(0)))
	assert.False(t, Truthy(float64(0)))

	assert.True(t, Truthy(true))
	assert.True(t, Truthy("no"))
	assert.True(t, Truthy(1))
	assert.True(t, Truthy(float64(0.5)))
	assert.True(t, Truthy([]any{}))
	assert.True(t, Truthy(map[string]any{}))
}
