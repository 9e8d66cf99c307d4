package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ExplicitTokenWins(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env_token")

	token, err := Resolve("explicit_token")

	require.NoError(t, err)
	assert.Equal(t, "explicit_token", token)
}

func TestResolve_EnvFallback(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env_token")

	token, err := Resolve("")

	require.NoError(t, err)
	assert.Equal(t, "env_token", token)
}

func TestEnvProvider_Missing(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestGhCliProvider(t *testing.T) {
	// Depends on gh being installed and authenticated; only verify the
	// contract that a failure is descriptive and a success non-empty.
	provider := &GhCliProvider{}
	token, err := provider.GetToken()

	if err != nil {
		assert.Contains(t, err.Error(), "gh")
	} else {
		assert.NotEmpty(t, token)
	}
}
