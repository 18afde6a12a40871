package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/tweetscrape/internal/model"
	"github.com/roach88/tweetscrape/internal/registry"
	"github.com/roach88/tweetscrape/internal/store"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID[,ID...] | all",
		Short: "Removes query by its database id or all queries",
		Long: `Remove tracked entries by id, or every entry with "all".

Each id is reported on stderr. An unknown id is reported and skipped; it
does not stop the remaining ids and does not fail the command.

Example:
  tweetscrape remove 3
  tweetscrape remove 2,5,7
  tweetscrape remove all`,
		Args: exactArgs(1, "Command requires one argument."),
		RunE: rootOpts.runE(func(cmd *cobra.Command, args []string) error {
			sel, err := model.ParseSelector(args[0])
			if err != nil {
				return err
			}
			return runBatch(cmd, rootOpts, "Remove", func(ctx context.Context, r *registry.Registry, tx *store.Tx) (registry.BatchReport, error) {
				return r.Remove(ctx, tx, sel)
			})
		}),
	}
}

// NewActivateCommand creates the activate command.
func NewActivateCommand(rootOpts *RootOptions) *cobra.Command {
	return newToggleCommand(rootOpts, "activate", "Activates topic by its id", "Activate",
		func(ctx context.Context, r *registry.Registry, tx *store.Tx, ids []int64) (registry.BatchReport, error) {
			return r.Activate(ctx, tx, ids)
		})
}

// NewDeactivateCommand creates the deactivate command.
func NewDeactivateCommand(rootOpts *RootOptions) *cobra.Command {
	return newToggleCommand(rootOpts, "deactivate", "Deactivates topic by its id", "Deactivate",
		func(ctx context.Context, r *registry.Registry, tx *store.Tx, ids []int64) (registry.BatchReport, error) {
			return r.Deactivate(ctx, tx, ids)
		})
}

type toggleFunc func(ctx context.Context, r *registry.Registry, tx *store.Tx, ids []int64) (registry.BatchReport, error)

func newToggleCommand(rootOpts *RootOptions, name, short, verb string, fn toggleFunc) *cobra.Command {
	return &cobra.Command{
		Use:   name + " ID[,ID...]",
		Short: short,
		Args:  exactArgs(1, "Command requires one argument."),
		RunE: rootOpts.runE(func(cmd *cobra.Command, args []string) error {
			ids, err := model.ParseIDList(args[0])
			if err != nil {
				return err
			}
			return runBatch(cmd, rootOpts, verb, func(ctx context.Context, r *registry.Registry, tx *store.Tx) (registry.BatchReport, error) {
				return fn(ctx, r, tx, ids)
			})
		}),
	}
}

// batchResult is the structured payload of a batch command.
type batchResult struct {
	All       bool    `json:"all,omitempty" yaml:"all,omitempty"`
	Count     int64   `json:"count" yaml:"count"`
	Succeeded []int64 `json:"succeeded" yaml:"succeeded"`
	NotFound  []int64 `json:"not_found" yaml:"not_found"`
}

func runBatch(cmd *cobra.Command, opts *RootOptions, verb string, apply func(context.Context, *registry.Registry, *store.Tx) (registry.BatchReport, error)) error {
	e, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	var report registry.BatchReport
	err = e.withSession(cmd.Context(), func(ctx context.Context, tx *store.Tx) error {
		report, err = apply(ctx, registry.New(e.logger), tx)
		return err
	})
	if err != nil {
		return err
	}

	result := batchResult{
		All:       report.All,
		Count:     report.Count,
		Succeeded: []int64{},
		NotFound:  []int64{},
	}
	if report.All {
		e.out.Diagnostic("Removed all topics/queries.")
	}
	for _, o := range report.Outcomes {
		if o.Found {
			result.Succeeded = append(result.Succeeded, o.ID)
			e.out.Diagnostic("%s successful, ID=%d", verb, o.ID)
			continue
		}
		result.NotFound = append(result.NotFound, o.ID)
		e.out.Diagnostic("%s failed, not found, ID=%d", verb, o.ID)
	}

	if e.out.Structured() {
		return e.out.Success(result)
	}
	return nil
}
