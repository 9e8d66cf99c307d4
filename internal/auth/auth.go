// Package auth resolves the GitHub token for the run. The explicit
// github-token input always wins; the fallbacks exist so the binary
// can be run locally against a real project without wiring inputs.
package auth

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// TokenProvider is a single source of a GitHub token.
type TokenProvider interface {
	GetToken() (string, error)
}

// EnvProvider reads the GITHUB_TOKEN environment variable.
type EnvProvider struct{}

// GetToken returns the GITHUB_TOKEN value, or an error when unset.
func (e *EnvProvider) GetToken() (string, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return "", errors.New("GITHUB_TOKEN environment variable not set or empty")
	}
	return token, nil
}

// GhCliProvider shells out to `gh auth token`, picking up the user's
// gh CLI authentication state.
type GhCliProvider struct{}

// GetToken runs `gh auth token` and returns its output.
func (g *GhCliProvider) GetToken() (string, error) {
	cmd := exec.Command("gh", "auth", "token", "--hostname", "github.com")
	output, err := cmd.Output()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return "", errors.New("gh CLI not found in PATH")
		}
		return "", fmt.Errorf("gh auth token failed: %w", err)
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", errors.New("gh auth token returned empty token")
	}

	return token, nil
}

// Resolve returns the token to use for the run: the explicit input
// when non-empty, then GITHUB_TOKEN, then the gh CLI.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	env := &EnvProvider{}
	if token, err := env.GetToken(); err == nil {
		return token, nil
	}

	cli := &GhCliProvider{}
	token, err := cli.GetToken()
	if err == nil {
		return token, nil
	}

	return "", fmt.Errorf(
		"failed to obtain GitHub token: gh CLI error (%v) and GITHUB_TOKEN not set.\n"+
			"Please either:\n"+
			"  1. Provide the github-token input, or\n"+
			"  2. Set the GITHUB_TOKEN environment variable, or\n"+
			"  3. Run 'gh auth login' to authenticate with GitHub CLI",
		err,
	)
}
