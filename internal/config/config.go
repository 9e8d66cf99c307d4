// Package config reads the step's inputs and writes its outputs.
// Inputs resolve from three sources, highest precedence first: command
// line flags, the INPUT_* environment variables set by the Actions
// runner, and an optional YAML file for running outside a workflow.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingInput indicates a required input was not provided by
	// any source.
	ErrMissingInput = errors.New("required input missing")
	// ErrMissingFieldValue indicates neither field-value nor
	// field-value-script was provided.
	ErrMissingFieldValue = errors.New("`field-value` or `field-value-script` is required")
)

// Inputs holds the recognized step inputs.
type Inputs struct {
	ProjectURL       string `yaml:"project-url"`
	GitHubToken      string `yaml:"github-token"`
	FieldName        string `yaml:"field-name"`
	FieldValue       string `yaml:"field-value"`
	FieldValueScript string `yaml:"field-value-script"`
	SkipUpdateScript string `yaml:"skip-update-script"`
	AllItems         bool   `yaml:"all-items"`
}

// ApplyEnv fills any input still empty from the runner-provided
// INPUT_* environment variables. The runner names variables with the
// hyphenated input name; an underscore spelling is accepted as well
// since POSIX shells cannot export hyphenated names.
func (in *Inputs) ApplyEnv() {
	fillString(&in.ProjectURL, "project-url")
	fillString(&in.GitHubToken, "github-token")
	fillString(&in.FieldName, "field-name")
	fillString(&in.FieldValue, "field-value")
	fillString(&in.FieldValueScript, "field-value-script")
	fillString(&in.SkipUpdateScript, "skip-update-script")

	if !in.AllItems {
		if raw := inputEnv("all-items"); raw != "" {
			v, err := strconv.ParseBool(strings.ToLower(raw))
			if err == nil {
				in.AllItems = v
			}
		}
	}
}

// Merge fills any input still empty from file-sourced inputs.
func (in *Inputs) Merge(file *Inputs) {
	if in.ProjectURL == "" {
		in.ProjectURL = file.ProjectURL
	}
	if in.GitHubToken == "" {
		in.GitHubToken = file.GitHubToken
	}
	if in.FieldName == "" {
		in.FieldName = file.FieldName
	}
	if in.FieldValue == "" {
		in.FieldValue = file.FieldValue
	}
	if in.FieldValueScript == "" {
		in.FieldValueScript = file.FieldValueScript
	}
	if in.SkipUpdateScript == "" {
		in.SkipUpdateScript = file.SkipUpdateScript
	}
	if !in.AllItems {
		in.AllItems = file.AllItems
	}
}

// Validate checks the presence rules: project-url and field-name are
// always required, and at least one of field-value and
// field-value-script must be set. The token is checked separately so
// local runs can fall back to gh CLI credentials.
func (in *Inputs) Validate() error {
	if in.ProjectURL == "" {
		return fmt.Errorf("%w: project-url", ErrMissingInput)
	}
	if in.FieldName == "" {
		return fmt.Errorf("%w: field-name", ErrMissingInput)
	}
	if in.FieldValue == "" && in.FieldValueScript == "" {
		return ErrMissingFieldValue
	}
	return nil
}

// LoadFile reads inputs from a YAML file.
func LoadFile(path string) (*Inputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var in Inputs
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &in, nil
}

func fillString(dst *string, name string) {
	if *dst == "" {
		*dst = inputEnv(name)
	}
}

func inputEnv(name string) string {
	upper := strings.ToUpper(name)
	if v := os.Getenv("INPUT_" + upper); v != "" {
		return v
	}
	return os.Getenv("INPUT_" + strings.ReplaceAll(upper, "-", "_"))
}
