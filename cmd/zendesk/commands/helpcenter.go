package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

var categoryColumns = []column{
	{Header: "ID", Key: "id"},
	{Header: "Name", Key: "name"},
	{Header: "Locale", Key: "locale"},
	{Header: "Position", Key: "position"},
	{Header: "Updated", Key: "updated_at"},
}

var articleColumns = []column{
	{Header: "ID", Key: "id"},
	{Header: "Title", Key: "title"},
	{Header: "Section", Key: "section_id"},
	{Header: "Locale", Key: "locale"},
	{Header: "Draft", Key: "draft"},
	{Header: "Updated", Key: "updated_at"},
}

// NewHelpCenterCommand creates the helpcenter command group.
func NewHelpCenterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "helpcenter",
		Aliases: []string{"hc", "guide"},
		Short:   "Browse the Help Center",
		Long:    "List Help Center categories and articles",
	}

	cmd.AddCommand(newHelpCenterCategoriesCommand())
	cmd.AddCommand(newHelpCenterArticlesCommand())

	return cmd
}

func newHelpCenterCategoriesCommand() *cobra.Command {
	var (
		flags  pageFlags
		locale string
	)

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Long:  "List Help Center categories, optionally for a locale",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			fetch := func(ctx context.Context, page zendesk.PaginationSpec) (zendesk.Object, error) {
				return client.HelpCenter().ListCategories(ctx, locale, page)
			}

			return listPages(cmd.Context(), cmd.OutOrStdout(), &flags, fetch, "categories", categoryColumns)
		},
	}

	addPageFlags(cmd, &flags)
	cmd.Flags().StringVar(&locale, "locale", "", "locale such as en-us (account default when empty)")

	return cmd
}

func newHelpCenterArticlesCommand() *cobra.Command {
	var (
		flags      pageFlags
		locale     string
		sectionID  int64
		categoryID int64
		query      string
	)

	cmd := &cobra.Command{
		Use:   "articles",
		Short: "List or search articles",
		Long:  "List Help Center articles, scoped to a section or category, or search them with --query",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			helpCenter := client.HelpCenter()

			if strings.TrimSpace(query) != "" {
				body, err := helpCenter.SearchArticles(cmd.Context(), query)
				if err != nil {
					return fmt.Errorf("failed to search articles: %w", err)
				}

				return renderList(cmd.OutOrStdout(), body, "results", articleColumns)
			}

			fetch := func(ctx context.Context, page zendesk.PaginationSpec) (zendesk.Object, error) {
				switch {
				case sectionID > 0:
					return helpCenter.ListSectionArticles(ctx, locale, sectionID, page)
				case categoryID > 0:
					return helpCenter.ListCategoryArticles(ctx, locale, categoryID, page)
				default:
					return helpCenter.ListArticles(ctx, locale, page)
				}
			}

			return listPages(cmd.Context(), cmd.OutOrStdout(), &flags, fetch, "articles", articleColumns)
		},
	}

	addPageFlags(cmd, &flags)
	cmd.Flags().StringVar(&locale, "locale", "", "locale such as en-us (account default when empty)")
	cmd.Flags().Int64Var(&sectionID, "section", 0, "only articles in this section ID")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "only articles in this category ID")
	cmd.Flags().StringVarP(&query, "query", "q", "", "full-text search instead of listing")
	cmd.MarkFlagsMutuallyExclusive("section", "category", "query")

	return cmd
}
