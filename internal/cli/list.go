package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/tweetscrape/internal/model"
	"github.com/roach88/tweetscrape/internal/registry"
	"github.com/roach88/tweetscrape/internal/store"
)

const tableRow = "%5s %30s %30s %10s\n"

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List current topics and queries (with id numbers)",
		Args:  noArgs("Command takes no arguments."),
		RunE: rootOpts.runE(func(cmd *cobra.Command, args []string) error {
			return runList(cmd, rootOpts)
		}),
	}
}

func runList(cmd *cobra.Command, opts *RootOptions) error {
	e, err := opts.setup(cmd)
	if err != nil {
		return err
	}

	var topics []model.Topic
	err = e.withSession(cmd.Context(), func(ctx context.Context, tx *store.Tx) error {
		topics, err = registry.New(e.logger).List(ctx, tx)
		return err
	})
	if err != nil {
		return err
	}

	return e.out.Success(topicTable{Topics: topics})
}

// topicTable is the list payload.
type topicTable struct {
	Topics []model.Topic `json:"topics" yaml:"topics"`
}

// RenderText prints the fixed-width table.
func (t topicTable) RenderText(w io.Writer) error {
	fmt.Fprintf(w, tableRow, "ID", "Topic", "Query", "Active?")
	if len(t.Topics) == 0 {
		fmt.Fprintln(w, "No results to display.")
		return nil
	}
	for _, topic := range t.Topics {
		active := "0"
		if topic.Active {
			active = "1"
		}
		fmt.Fprintf(w, tableRow, fmt.Sprint(topic.ID), topic.Topic, topic.Query, active)
	}
	return nil
}
