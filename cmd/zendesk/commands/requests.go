package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var requestColumns = []column{
	{Header: "ID", Key: "id"},
	{Header: "Subject", Key: "subject"},
	{Header: "Status", Key: "status"},
	{Header: "Requester", Key: "requester_id"},
	{Header: "Updated", Key: "updated_at"},
}

var requestDetailColumns = []column{
	{Header: "ID", Key: "id"},
	{Header: "Subject", Key: "subject"},
	{Header: "Description", Key: "description"},
	{Header: "Status", Key: "status"},
	{Header: "Priority", Key: "priority"},
	{Header: "Requester", Key: "requester_id"},
	{Header: "Created", Key: "created_at"},
	{Header: "Updated", Key: "updated_at"},
}

// NewRequestsCommand creates the requests command group.
func NewRequestsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requests",
		Aliases: []string{"request", "req"},
		Short:   "View end-user requests",
		Long:    "List and view requests from the end-user perspective. Combine with --as to act for a customer",
	}

	cmd.AddCommand(newRequestsListCommand())
	cmd.AddCommand(newRequestsShowCommand())

	return cmd
}

func newRequestsListCommand() *cobra.Command {
	var flags pageFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List requests",
		Long:  "List requests of the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			return listPages(cmd.Context(), cmd.OutOrStdout(), &flags, client.Requests().List, "requests", requestColumns)
		},
	}

	addPageFlags(cmd, &flags)

	return cmd
}

func newRequestsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show REQUEST_ID",
		Short: "Show request details",
		Long:  "Display detailed information about a specific request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			body, err := client.Requests().Show(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get request %d: %w", id, err)
			}

			return renderDetail(cmd.OutOrStdout(), body, "request", requestDetailColumns)
		},
	}
}
