package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

var accountOverviewColumns = []column{
	{Header: "Total Calls", Key: "total_calls"},
	{Header: "Inbound Calls", Key: "total_inbound_calls"},
	{Header: "Outbound Calls", Key: "total_outbound_calls"},
	{Header: "Calls In Queue", Key: "total_calls_in_queue"},
	{Header: "Average Wait Time", Key: "average_wait_time"},
	{Header: "Average Call Duration", Key: "average_call_duration"},
}

var queueActivityColumns = []column{
	{Header: "Agents Online", Key: "agents_online"},
	{Header: "Calls Waiting", Key: "calls_waiting"},
	{Header: "Callbacks Waiting", Key: "callbacks_waiting"},
	{Header: "Average Wait Time", Key: "average_wait_time"},
	{Header: "Longest Wait Time", Key: "longest_wait_time"},
}

// NewTalkCommand creates the talk command group.
func NewTalkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "talk",
		Aliases: []string{"voice"},
		Short:   "View Talk statistics",
		Long:    "Display Zendesk Talk (voice) statistics",
	}

	cmd.AddCommand(newTalkStatCommand("overview", "Show account overview",
		"Display call totals and averages for the account", "account_overview", accountOverviewColumns,
		func(ctx context.Context, talk zendesk.TalkClient) (zendesk.Object, error) { return talk.AccountOverview(ctx) }))
	cmd.AddCommand(newTalkStatCommand("queue", "Show current queue activity",
		"Display the live state of the call queue", "current_queue_activity", queueActivityColumns,
		func(ctx context.Context, talk zendesk.TalkClient) (zendesk.Object, error) {
			return talk.CurrentQueueActivity(ctx)
		}))

	return cmd
}

func newTalkStatCommand(
	use, short, long, key string,
	columns []column,
	fetch func(context.Context, zendesk.TalkClient) (zendesk.Object, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			body, err := fetch(cmd.Context(), client.Talk())
			if err != nil {
				return fmt.Errorf("failed to get %s: %w", key, err)
			}

			return renderDetail(cmd.OutOrStdout(), body, key, columns)
		},
	}
}
