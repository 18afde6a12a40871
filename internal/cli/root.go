package cli

import (
	"context"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/tweetscrape/internal/ingest"
	"github.com/roach88/tweetscrape/internal/model"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "yaml"
	Database   string // overrides database.path when set
	ConfigPath string

	// Searcher overrides the remote search client (for testing).
	// If nil, a client is built from the search configuration.
	Searcher ingest.Searcher

	// Clock and RunIDs override the ingestion defaults (for testing).
	Clock  ingest.Clock
	RunIDs ingest.RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the tweetscrape CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command with preset options.
// Flags parsed on the command line are written into opts.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tweetscrape",
		Short: "Poll search for tracked topics and store new results",
		Long: `Poll the recent-search API for every active topic/query pair and store the
results that are newer than anything stored for that query.

Without a command, one ingestion run is performed. Commands manage the set
of tracked topic/query pairs. Commands that take an id also accept a
comma-delimited list of ids.

Example:
  tweetscrape add Movies '#film'
  tweetscrape -d ./movies.db
  tweetscrape remove 2,3`,
		Args:          noArgs("Invalid command."),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return model.NewUsageError("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: opts.runE(func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, opts)
		}),
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return model.NewUsageError("%v", err)
	})

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.Database, "database", "d", "", "SQLite database file (default from config, ts.db)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file (default $TWEETSCRAPE_CONFIG or ./tweetscrape.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewActivateCommand(opts))
	cmd.AddCommand(NewDeactivateCommand(opts))

	return cmd
}

// Execute runs the command line and returns the process exit code.
// Failures are reported on the command's error stream.
func Execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	ReportError(cmd.ErrOrStderr(), err)
	return GetExitCode(err)
}

// runE wraps a command body so that failures carry an exit code and, in
// structured formats, an error response on stdout.
func (o *RootOptions) runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := toExitError(fn(cmd, args))
		if err != nil {
			if out := o.formatter(cmd); out.Structured() {
				_ = out.Error(errorCode(err), err.Error(), nil)
			}
		}
		return err
	}
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// noArgs rejects positional arguments with a usage error.
func noArgs(message string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 0 {
			return model.NewUsageError("%s", message)
		}
		return nil
	}
}

// exactArgs requires n positional arguments, reporting a usage error
// otherwise.
func exactArgs(n int, message string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return model.NewUsageError("%s", message)
		}
		return nil
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
