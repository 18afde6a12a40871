package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/tweetscrape/internal/registry"
	"github.com/roach88/tweetscrape/internal/store"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add TOPIC QUERY",
		Short: "Add a new topic and query (checks for duplicates)",
		Long: `Add a new topic and query. The pair starts active.

Adding a pair that is already tracked fails with the id of the existing
entry and changes nothing.

Example:
  tweetscrape add Movies '#film'`,
		Args: exactArgs(2, "Command requires two arguments."),
		RunE: rootOpts.runE(func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, rootOpts, args[0], args[1])
		}),
	}
}

type addResult struct {
	ID    int64  `json:"id" yaml:"id"`
	Topic string `json:"topic" yaml:"topic"`
	Query string `json:"query" yaml:"query"`
}

func runAdd(cmd *cobra.Command, opts *RootOptions, topic, query string) error {
	e, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	var id int64
	err = e.withSession(cmd.Context(), func(ctx context.Context, tx *store.Tx) error {
		id, err = registry.New(e.logger).Add(ctx, tx, topic, query)
		return err
	})
	if err != nil {
		return err
	}

	if e.out.Structured() {
		return e.out.Success(addResult{ID: id, Topic: topic, Query: query})
	}
	return nil
}
