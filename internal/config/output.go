package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// OutputWriter appends step outputs to the GITHUB_OUTPUT file. When the
// variable is unset (a local run) outputs are logged instead so they
// remain visible.
type OutputWriter struct {
	path string
	log  zerolog.Logger
}

// NewOutputWriter builds a writer targeting the file named by
// GITHUB_OUTPUT, if any.
func NewOutputWriter(log zerolog.Logger) *OutputWriter {
	return &OutputWriter{
		path: os.Getenv("GITHUB_OUTPUT"),
		log:  log,
	}
}

// Set records one named output. Output values here are opaque node
// ids, so the simple name=value form suffices; a value containing a
// newline is rejected rather than corrupting the output file.
func (w *OutputWriter) Set(name, value string) error {
	if strings.ContainsAny(value, "\n\r") {
		return fmt.Errorf("output %s contains a newline", name)
	}

	if w.path == "" {
		w.log.Info().Str("name", name).Str("value", value).Msg("output")
		return nil
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}

	return nil
}
