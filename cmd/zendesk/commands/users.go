package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

var userColumns = []column{
	{Header: "ID", Key: "id"},
	{Header: "Name", Key: "name"},
	{Header: "Email", Key: "email"},
	{Header: "Role", Key: "role"},
	{Header: "Organization", Key: "organization_id"},
}

var userDetailColumns = []column{
	{Header: "ID", Key: "id"},
	{Header: "Name", Key: "name"},
	{Header: "Email", Key: "email"},
	{Header: "Role", Key: "role"},
	{Header: "Organization", Key: "organization_id"},
	{Header: "Time Zone", Key: "time_zone"},
	{Header: "Locale", Key: "locale"},
	{Header: "Active", Key: "active"},
	{Header: "Suspended", Key: "suspended"},
	{Header: "Created", Key: "created_at"},
	{Header: "Last Login", Key: "last_login_at"},
}

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user", "u"},
		Short:   "Manage users",
		Long:    "List, view and search Zendesk users",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersShowCommand())
	cmd.AddCommand(newUsersSearchCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var (
		flags pageFlags
		opts  zendesk.UserListOptions
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "List users, optionally scoped to a group or an organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			fetch := func(ctx context.Context, page zendesk.PaginationSpec) (zendesk.Object, error) {
				scoped := opts
				scoped.Page = page

				return client.Users().List(ctx, scoped)
			}

			return listPages(cmd.Context(), cmd.OutOrStdout(), &flags, fetch, "users", userColumns)
		},
	}

	addPageFlags(cmd, &flags)
	cmd.Flags().Int64Var(&opts.GroupID, "group", 0, "only members of this group ID")
	cmd.Flags().Int64Var(&opts.OrganizationID, "org", 0, "only members of this organization ID")
	cmd.Flags().StringVar(&opts.Role, "role", "", "only users with this role (end-user, agent, admin)")
	cmd.MarkFlagsMutuallyExclusive("group", "org")

	return cmd
}

func newUsersShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show USER_ID|me",
		Short: "Show user details",
		Long:  "Display detailed information about a user, or the authenticated user with 'me'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			var body zendesk.Object

			if args[0] == "me" {
				body, err = client.Users().Me(cmd.Context())
			} else {
				var id int64

				id, err = parseID(args[0])
				if err != nil {
					return err
				}

				body, err = client.Users().Show(cmd.Context(), id)
			}

			if err != nil {
				return fmt.Errorf("failed to get user %s: %w", args[0], err)
			}

			return renderDetail(cmd.OutOrStdout(), body, "user", userDetailColumns)
		},
	}
}

func newUsersSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search EMAIL",
		Short: "Find users by email",
		Long:  "Search users by email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			body, err := client.Users().SearchByEmail(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to search users: %w", err)
			}

			return renderList(cmd.OutOrStdout(), body, "users", userColumns)
		},
	}
}
