package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk/internal/constants"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

var ticketColumns = []column{
	{Header: "ID", Key: "id"},
	{Header: "Subject", Key: "subject"},
	{Header: "Status", Key: "status"},
	{Header: "Priority", Key: "priority"},
	{Header: "Requester", Key: "requester_id"},
	{Header: "Updated", Key: "updated_at"},
}

var ticketDetailColumns = []column{
	{Header: "ID", Key: "id"},
	{Header: "Subject", Key: "subject"},
	{Header: "Description", Key: "description"},
	{Header: "Status", Key: "status"},
	{Header: "Priority", Key: "priority"},
	{Header: "Type", Key: "type"},
	{Header: "Requester", Key: "requester_id"},
	{Header: "Assignee", Key: "assignee_id"},
	{Header: "Group", Key: "group_id"},
	{Header: "Created", Key: "created_at"},
	{Header: "Updated", Key: "updated_at"},
}

// NewTicketsCommand creates the tickets command group.
func NewTicketsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tickets",
		Aliases: []string{"ticket", "t"},
		Short:   "Manage tickets",
		Long:    "List, view, create, comment on and delete Zendesk tickets",
	}

	cmd.AddCommand(newTicketsListCommand())
	cmd.AddCommand(newTicketsShowCommand())
	cmd.AddCommand(newTicketsCreateCommand())
	cmd.AddCommand(newTicketsDeleteCommand())
	cmd.AddCommand(newTicketsCommentCommand())

	return cmd
}

func newTicketsListCommand() *cobra.Command {
	var (
		flags       pageFlags
		requesterID int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		Long:  "List tickets visible to the authenticated agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			if requesterID > 0 {
				body, err := client.Tickets().ListRequestedByUser(cmd.Context(), requesterID)
				if err != nil {
					return fmt.Errorf("failed to list tickets: %w", err)
				}

				return renderList(cmd.OutOrStdout(), body, "tickets", ticketColumns)
			}

			return listPages(cmd.Context(), cmd.OutOrStdout(), &flags, client.Tickets().List, "tickets", ticketColumns)
		},
	}

	addPageFlags(cmd, &flags)
	cmd.Flags().Int64Var(&requesterID, "requester", 0, "only tickets requested by this user ID")

	return cmd
}

func newTicketsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show TICKET_ID",
		Short: "Show ticket details",
		Long:  "Display detailed information about a specific ticket",
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

			body, err := client.Tickets().Show(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get ticket %d: %w", id, err)
			}

			return renderDetail(cmd.OutOrStdout(), body, "ticket", ticketDetailColumns)
		},
	}
}

func newTicketsCreateCommand() *cobra.Command {
	var (
		subject     string
		description string
		opts        zendesk.TicketOptions
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a ticket",
		Long:  "Create a ticket from a subject and description",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(subject) == "" {
				return fmt.Errorf("%w: --subject", constants.ErrMissingArgument)
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			body, err := client.Tickets().Create(cmd.Context(), zendesk.TicketFromSubject(subject, description, opts))
			if err != nil {
				return fmt.Errorf("failed to create ticket: %w", err)
			}

			return renderDetail(cmd.OutOrStdout(), body, "ticket", ticketDetailColumns)
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "ticket subject")
	cmd.Flags().StringVar(&description, "description", "", "ticket description, sent as the first comment")
	cmd.Flags().StringVar(&opts.RequesterName, "requester-name", "", "requester name")
	cmd.Flags().StringVar(&opts.RequesterEmail, "requester-email", "", "requester email")
	cmd.Flags().StringSliceVar(&opts.Tags, "tag", nil, "ticket tag (repeatable)")
	cmd.Flags().StringVar(&opts.Channel, "channel", "", "via channel recorded on the ticket")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "priority (low, normal, high, urgent)")
	cmd.Flags().StringVar(&opts.Type, "type", "", "type (problem, incident, question, task)")

	return cmd
}

func newTicketsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete TICKET_ID",
		Short: "Delete a ticket",
		Long:  "Delete a ticket. Deleted tickets can be restored from the agent interface for 30 days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !force {
				err = confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Really delete ticket %d?", id))
				if err != nil {
					return err
				}
			}

			return deleteTicket(cmd.Context(), cmd, id)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func deleteTicket(ctx context.Context, cmd *cobra.Command, id int64) error {
	client, err := createClient(ctx)
	if err != nil {
		return err
	}

	err = client.Tickets().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket %d: %w", id, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Ticket %d deleted\n", id)

	return nil
}

func newTicketsCommentCommand() *cobra.Command {
	var private bool

	cmd := &cobra.Command{
		Use:   "comment TICKET_ID TEXT",
		Short: "Add a comment to a ticket",
		Long:  "Add a public comment, or an internal note with --private",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			text := strings.Join(args[1:], " ")

			body, err := client.Tickets().AddComment(cmd.Context(), id, text, !private)
			if err != nil {
				return fmt.Errorf("failed to comment on ticket %d: %w", id, err)
			}

			return renderDetail(cmd.OutOrStdout(), body, "ticket", ticketDetailColumns)
		},
	}

	cmd.Flags().BoolVar(&private, "private", false, "add an internal note")

	return cmd
}
