package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnv_RunnerStyleNames(t *testing.T) {
	t.Setenv("INPUT_PROJECT-URL", "https://github.com/orgs/myorg/projects/1")
	t.Setenv("INPUT_GITHUB-TOKEN", "gh_token")
	t.Setenv("INPUT_FIELD-NAME", "Status")
	t.Setenv("INPUT_FIELD-VALUE", "Done")

	var in Inputs
	in.ApplyEnv()

	assert.Equal(t, "https://github.com/orgs/myorg/projects/1", in.ProjectURL)
	assert.Equal(t, "gh_token", in.GitHubToken)
	assert.Equal(t, "Status", in.FieldName)
	assert.Equal(t, "Done", in.FieldValue)
	assert.Equal(t, "", in.FieldValueScript)
	assert.Equal(t, "", in.SkipUpdateScript)
	assert.False(t, in.AllItems)
}

func TestApplyEnv_UnderscoreFallback(t *testing.T) {
	t.Setenv("INPUT_FIELD_NAME", "Iteration")
	t.Setenv("INPUT_ALL_ITEMS", "true")

	var in Inputs
	in.ApplyEnv()

	assert.Equal(t, "Iteration", in.FieldName)
	assert.True(t, in.AllItems)
}

// Values already set (by flags) win over the environment.
func TestApplyEnv_FlagsTakePrecedence(t *testing.T) {
	t.Setenv("INPUT_FIELD-NAME", "FromEnv")

	in := Inputs{FieldName: "FromFlag"}
	in.ApplyEnv()

	assert.Equal(t, "FromFlag", in.FieldName)
}

func TestApplyEnv_AllItemsParsing(t *testing.T) {
	for raw, want := range map[string]bool{
		"true": true, "TRUE": true, "1": true,
		"false": false, "0": false, "nonsense": false,
	} {
		t.Setenv("INPUT_ALL-ITEMS", raw)

		var in Inputs
		in.ApplyEnv()
		assert.Equal(t, want, in.AllItems, "raw: %s", raw)

		os.Unsetenv("INPUT_ALL-ITEMS")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Inputs
		wantErr error
	}{
		{
			name: "literal value",
			in: Inputs{
				ProjectURL: "https://github.com/orgs/myorg/projects/1",
				FieldName:  "Status",
				FieldValue: "Done",
			},
		},
		{
			name: "script value",
			in: Inputs{
				ProjectURL:       "https://github.com/orgs/myorg/projects/1",
				FieldName:        "Status",
				FieldValueScript: `"Done"`,
			},
		},
		{
			name:    "missing project url",
			in:      Inputs{FieldName: "Status", FieldValue: "Done"},
			wantErr: ErrMissingInput,
		},
		{
			name: "missing field name",
			in: Inputs{
				ProjectURL: "https://github.com/orgs/myorg/projects/1",
				FieldValue: "Done",
			},
			wantErr: ErrMissingInput,
		},
		{
			name: "missing both value sources",
			in: Inputs{
				ProjectURL: "https://github.com/orgs/myorg/projects/1",
				FieldName:  "Status",
			},
			wantErr: ErrMissingFieldValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pvfield.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project-url: https://github.com/users/someone/projects/3
field-name: Last Review
field-value: "2024-06-01"
all-items: true
`), 0o644))

	in, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "https://github.com/users/someone/projects/3", in.ProjectURL)
	assert.Equal(t, "Last Review", in.FieldName)
	assert.Equal(t, "2024-06-01", in.FieldValue)
	assert.True(t, in.AllItems)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	in := Inputs{FieldName: "Status"}
	in.Merge(&Inputs{
		ProjectURL: "https://github.com/orgs/myorg/projects/1",
		FieldName:  "Ignored",
		FieldValue: "Done",
		AllItems:   true,
	})

	assert.Equal(t, "https://github.com/orgs/myorg/projects/1", in.ProjectURL)
	assert.Equal(t, "Status", in.FieldName)
	assert.Equal(t, "Done", in.FieldValue)
	assert.True(t, in.AllItems)
}
