package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

var searchColumns = []column{
	{Header: "Type", Key: "result_type"},
	{Header: "ID", Key: "id"},
	{Header: "Subject/Name", Key: "subject|name"},
	{Header: "Status", Key: "status"},
	{Header: "Updated", Key: "updated_at"},
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	var flags pageFlags

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search tickets, users and organizations",
		Long: `Run a query against the unified search endpoint, for example:

  zendesk search type:ticket status:open requester:jane@example.com`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			body, err := client.Search().Search(cmd.Context(), strings.Join(args, " "), flags.pagination())
			if err != nil {
				return fmt.Errorf("failed to search: %w", err)
			}

			return renderList(cmd.OutOrStdout(), body, "results", searchColumns)
		},
	}

	cmd.Flags().IntVar(&flags.perPage, "per-page", zendesk.DefaultPerPage, "results per page (max 100)")
	cmd.Flags().IntVar(&flags.page, "page", zendesk.DefaultPage, "page number")
	cmd.Flags().StringVar(&flags.sortBy, "sort-by", "", "field to sort by (updated_at, created_at, priority, status, ticket_type)")
	cmd.Flags().StringVar(&flags.sortOrder, "sort-order", string(zendesk.SortOrderDesc), "sort order (asc, desc)")

	return cmd
}
