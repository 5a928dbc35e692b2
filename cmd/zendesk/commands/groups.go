package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupColumns = []column{
	{Header: "ID", Key: "id"},
	{Header: "Name", Key: "name"},
	{Header: "Default", Key: "default"},
	{Header: "Created", Key: "created_at"},
}

var organizationColumns = []column{
	{Header: "ID", Key: "id"},
	{Header: "Name", Key: "name"},
	{Header: "Group", Key: "group_id"},
	{Header: "Created", Key: "created_at"},
}

// NewGroupsCommand creates the groups command group.
func NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group"},
		Short:   "View agent groups",
		Long:    "List Zendesk agent groups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List groups",
		Long:  "List all agent groups of the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			body, err := client.Groups().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list groups: %w", err)
			}

			return renderList(cmd.OutOrStdout(), body, "groups", groupColumns)
		},
	})

	return cmd
}

// NewOrgsCommand creates the orgs command group.
func NewOrgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"organizations", "org"},
		Short:   "View organizations",
		Long:    "List Zendesk organizations",
	}

	var flags pageFlags

	list := &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		Long:  "List organizations of the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			return listPages(cmd.Context(), cmd.OutOrStdout(), &flags, client.Organizations().List, "organizations", organizationColumns)
		},
	}

	addPageFlags(list, &flags)
	cmd.AddCommand(list)

	return cmd
}
