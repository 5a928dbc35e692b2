package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

var chatColumns = []column{
	{Header: "ID", Key: "id"},
	{Header: "Visitor", Key: "visitor.name"},
	{Header: "Type", Key: "type"},
	{Header: "Missed", Key: "missed"},
	{Header: "Started", Key: "timestamp"},
}

// NewChatCommand creates the chat command group.
func NewChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Browse chat transcripts",
		Long:  "List chat transcripts",
	}

	window := zendesk.DefaultChatPagination()

	list := &cobra.Command{
		Use:   "list",
		Short: "List chats",
		Long:  "List chat transcripts, optionally bounded by chat IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			body, err := client.Chat().List(cmd.Context(), window)
			if err != nil {
				return fmt.Errorf("failed to list chats: %w", err)
			}

			return renderList(cmd.OutOrStdout(), body, "chats", chatColumns)
		},
	}

	list.Flags().IntVar(&window.Limit, "limit", zendesk.DefaultChatLimit, "maximum number of chats")
	list.Flags().Int64Var(&window.SinceID, "since-id", zendesk.NoChatIDBound, "only chats after this ID")
	list.Flags().Int64Var(&window.MaxID, "max-id", zendesk.NoChatIDBound, "only chats up to this ID")

	cmd.AddCommand(list)

	return cmd
}
