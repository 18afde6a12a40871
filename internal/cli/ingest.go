package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/tweetscrape/internal/ingest"
	"github.com/roach88/tweetscrape/internal/search"
	"github.com/roach88/tweetscrape/internal/store"
)

// runIngest performs one ingestion run over every active entry. Nothing is
// committed unless every search and every write succeeds.
func runIngest(cmd *cobra.Command, opts *RootOptions) error {
	e, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	searcher := opts.Searcher
	if searcher == nil {
		if err := e.cfg.RequireCredentials(); err != nil {
			return &configError{err: err}
		}
		searcher = search.NewClient(e.cfg.Search.BaseURL, e.cfg.Search.BearerToken,
			search.WithTimeout(e.cfg.Search.Timeout),
			search.WithResultType(e.cfg.Search.ResultType),
		)
	}

	eng := ingest.New(searcher, e.cfg.Search.PageSize, e.logger)
	if opts.Clock != nil {
		eng = eng.WithClock(opts.Clock)
	}
	if opts.RunIDs != nil {
		eng = eng.WithRunIDs(opts.RunIDs)
	}

	var summary ingest.Summary
	err = e.withSession(cmd.Context(), func(ctx context.Context, tx *store.Tx) error {
		summary, err = eng.Run(ctx, tx)
		return err
	})
	if err != nil {
		return err
	}

	return e.out.Success(runSummary(summary))
}

// runSummary is the ingestion payload.
type runSummary ingest.Summary

// RenderText prints the one-line run summary.
func (s runSummary) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Fetched %d, inserted %d across %d topics.\n", s.Fetched, s.Inserted, s.Topics)
	return err
}
