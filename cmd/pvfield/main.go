package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danho/pvfield/internal/auth"
	"github.com/danho/pvfield/internal/config"
	"github.com/danho/pvfield/internal/gh"
	"github.com/danho/pvfield/internal/runner"
	"github.com/danho/pvfield/internal/script"
	"github.com/danho/pvfield/internal/trigger"
)

var (
	// CLI flags
	inputs     config.Inputs
	configFile string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pvfield",
		Short: "Update a field on a GitHub Projects v2 item",
		Long: heredoc.Doc(`
			pvfield updates a single field on a GitHub Projects v2 item in
			response to the issue or pull request event that triggered the
			workflow, or across all items on the project with --all-items.

			The field value is either a literal string or the result of an
			expression evaluated with two bindings: "context" (the workflow
			event) and "item" (the item's current field values). An optional
			skip expression short-circuits the update when it returns true.

			Inputs may also be provided as INPUT_* environment variables
			(as set by the Actions runner) or from a YAML file via --config.
		`),
		Example: heredoc.Doc(`
			# set the Status field of the triggering issue
			$ pvfield --project-url https://github.com/orgs/myorg/projects/1 \
			    --field-name Status --field-value Done

			# compute the value from the item's current fields
			$ pvfield --project-url https://github.com/orgs/myorg/projects/1 \
			    --field-name Points --field-value-script 'item.fieldValues["Estimate"] * 2'

			# re-stamp a date field on every item, skipping closed ones
			$ pvfield --project-url https://github.com/users/someone/projects/3 \
			    --all-items --field-name "Last Review" --field-value 2024-06-01 \
			    --skip-update-script 'item.fieldValues["Status"] == "Done"'
		`),
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&inputs.ProjectURL, "project-url", "", "URL of the project, e.g. https://github.com/orgs/myorg/projects/1")
	rootCmd.Flags().StringVar(&inputs.GitHubToken, "github-token", "", "Token with project read/write scope")
	rootCmd.Flags().StringVar(&inputs.FieldName, "field-name", "", "Display name of the field to update")
	rootCmd.Flags().StringVar(&inputs.FieldValue, "field-value", "", "Literal value to set")
	rootCmd.Flags().StringVar(&inputs.FieldValueScript, "field-value-script", "", "Expression computing the value to set")
	rootCmd.Flags().StringVar(&inputs.SkipUpdateScript, "skip-update-script", "", "Expression deciding whether to skip an item")
	rootCmd.Flags().BoolVar(&inputs.AllItems, "all-items", false, "Update every item on the project instead of the triggering one")
	rootCmd.Flags().StringVar(&configFile, "config", "", "YAML file providing inputs")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := newLogger()

	inputs.ApplyEnv()
	if configFile != "" {
		fileInputs, err := config.LoadFile(configFile)
		if err != nil {
			return err
		}
		inputs.Merge(fileInputs)
	}

	token, err := auth.Resolve(inputs.GitHubToken)
	if err != nil {
		return err
	}

	trig, err := trigger.Load()
	if err != nil {
		return err
	}

	client := gh.New(token)
	eval := script.New(script.DefaultTimeout)
	outputs := config.NewOutputWriter(log)

	r := runner.New(&inputs, client, trig, eval, outputs, log)
	return r.Run(context.Background())
}

// newLogger builds the console logger. RUNNER_DEBUG=1 (set by the
// Actions runner when debug logging is enabled) implies debug level
// unless --log-level says otherwise.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if os.Getenv("RUNNER_DEBUG") == "1" {
		level = zerolog.DebugLevel
	}
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
