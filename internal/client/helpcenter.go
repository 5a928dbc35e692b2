package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	zdhttp "github.com/fivetwenty-io/zendesk/internal/http"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// Help Center reads succeed only with 200.
var helpCenterReadCodes = []int{http.StatusOK}

// HelpCenterClient implements zendesk.HelpCenterClient.
type HelpCenterClient struct {
	client *Client
}

// NewHelpCenterClient creates a new Help Center client.
func NewHelpCenterClient(client *Client) *HelpCenterClient {
	return &HelpCenterClient{client: client}
}

// localized prefixes route with the locale segment when one is given.
func localized(locale, route string) string {
	if locale == "" {
		return route
	}

	return locale + "/" + route
}

func idPath(kind string, id int64) string {
	return kind + "/" + strconv.FormatInt(id, 10)
}

func (c *HelpCenterClient) read(ctx context.Context, route string, args *zendesk.Args, cache cacheKind) (zendesk.Object, error) {
	return c.client.object(ctx, call{
		api:     apiHelpCenter,
		method:  http.MethodGet,
		route:   route,
		args:    args,
		success: helpCenterReadCodes,
		cache:   cache,
	})
}

// ListCategories implements zendesk.HelpCenterClient.ListCategories.
func (c *HelpCenterClient) ListCategories(ctx context.Context, locale string, page zendesk.PaginationSpec) (zendesk.Object, error) {
	categories, err := c.read(ctx, localized(locale, "categories"), page.Args(), cacheDefault)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	return categories, nil
}

// ShowCategory implements zendesk.HelpCenterClient.ShowCategory.
func (c *HelpCenterClient) ShowCategory(ctx context.Context, locale string, id int64) (zendesk.Object, error) {
	category, err := c.read(ctx, localized(locale, idPath("categories", id)), nil, cacheDefault)
	if err != nil {
		return nil, fmt.Errorf("getting category %d: %w", id, err)
	}

	return category, nil
}

// ListSections implements zendesk.HelpCenterClient.ListSections.
func (c *HelpCenterClient) ListSections(ctx context.Context, locale string, categoryID int64) (zendesk.Object, error) {
	sections, err := c.read(ctx, localized(locale, idPath("categories", categoryID)+"/sections"), nil, cacheDefault)
	if err != nil {
		return nil, fmt.Errorf("listing sections of category %d: %w", categoryID, err)
	}

	return sections, nil
}

// ShowSection implements zendesk.HelpCenterClient.ShowSection.
func (c *HelpCenterClient) ShowSection(ctx context.Context, locale string, id int64) (zendesk.Object, error) {
	section, err := c.read(ctx, localized(locale, idPath("sections", id)), nil, cacheDefault)
	if err != nil {
		return nil, fmt.Errorf("getting section %d: %w", id, err)
	}

	return section, nil
}

// ListArticles implements zendesk.HelpCenterClient.ListArticles.
func (c *HelpCenterClient) ListArticles(ctx context.Context, locale string, page zendesk.PaginationSpec) (zendesk.Object, error) {
	articles, err := c.read(ctx, localized(locale, "articles"), page.Args(), cacheNone)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	return articles, nil
}

// ListSectionArticles implements zendesk.HelpCenterClient.ListSectionArticles.
func (c *HelpCenterClient) ListSectionArticles(ctx context.Context, locale string, sectionID int64, page zendesk.PaginationSpec) (zendesk.Object, error) {
	articles, err := c.read(ctx, localized(locale, idPath("sections", sectionID)+"/articles"), page.Args(), cacheNone)
	if err != nil {
		return nil, fmt.Errorf("listing articles of section %d: %w", sectionID, err)
	}

	return articles, nil
}

// ListCategoryArticles implements zendesk.HelpCenterClient.ListCategoryArticles.
func (c *HelpCenterClient) ListCategoryArticles(ctx context.Context, locale string, categoryID int64, page zendesk.PaginationSpec) (zendesk.Object, error) {
	articles, err := c.read(ctx, localized(locale, idPath("categories", categoryID)+"/articles"), page.Args(), cacheNone)
	if err != nil {
		return nil, fmt.Errorf("listing articles of category %d: %w", categoryID, err)
	}

	return articles, nil
}

// ListUserArticles implements zendesk.HelpCenterClient.ListUserArticles.
func (c *HelpCenterClient) ListUserArticles(ctx context.Context, userID int64, page zendesk.PaginationSpec) (zendesk.Object, error) {
	articles, err := c.read(ctx, idPath("users", userID)+"/articles", page.Args(), cacheNone)
	if err != nil {
		return nil, fmt.Errorf("listing articles of user %d: %w", userID, err)
	}

	return articles, nil
}

// IncrementalArticles implements zendesk.HelpCenterClient.IncrementalArticles.
func (c *HelpCenterClient) IncrementalArticles(ctx context.Context, startTime time.Time) (zendesk.Object, error) {
	args := zendesk.NewArgs().Set("start_time", startTime.Unix())

	articles, err := c.read(ctx, "incremental/articles", args, cacheNone)
	if err != nil {
		return nil, fmt.Errorf("listing articles changed since %s: %w", startTime.Format(time.RFC3339), err)
	}

	return articles, nil
}

// ShowArticle implements zendesk.HelpCenterClient.ShowArticle.
func (c *HelpCenterClient) ShowArticle(ctx context.Context, locale string, id int64) (zendesk.Object, error) {
	article, err := c.read(ctx, localized(locale, idPath("articles", id)), nil, cacheNone)
	if err != nil {
		return nil, fmt.Errorf("getting article %d: %w", id, err)
	}

	return article, nil
}

// SearchArticles implements zendesk.HelpCenterClient.SearchArticles.
func (c *HelpCenterClient) SearchArticles(ctx context.Context, query string) (zendesk.Object, error) {
	if query == "" {
		return nil, zendesk.ErrQueryRequired
	}

	results, err := c.read(ctx, "articles/search", zendesk.NewArgs().Set("query", query), cacheNone)
	if err != nil {
		return nil, fmt.Errorf("searching articles: %w", err)
	}

	return results, nil
}

// CreateArticle implements zendesk.HelpCenterClient.CreateArticle.
func (c *HelpCenterClient) CreateArticle(ctx context.Context, locale string, sectionID int64, article zendesk.Object) (zendesk.Object, error) {
	if len(article) == 0 {
		return nil, zendesk.ErrPayloadRequired
	}

	created, err := c.client.object(ctx, call{
		api:    apiHelpCenter,
		method: http.MethodPost,
		route:  localized(locale, idPath("sections", sectionID)+"/articles"),
		args:   zendesk.ArgsFromMap(zendesk.ArticleFromPayload(article)),
	})
	if err != nil {
		return nil, fmt.Errorf("creating article in section %d: %w", sectionID, err)
	}

	return created, nil
}

// ArchiveArticle implements zendesk.HelpCenterClient.ArchiveArticle.
func (c *HelpCenterClient) ArchiveArticle(ctx context.Context, id int64) error {
	_, err := c.client.do(ctx, call{
		api:     apiHelpCenter,
		method:  http.MethodDelete,
		route:   idPath("articles", id),
		success: zdhttp.DeleteSuccessCodes,
	})
	if err != nil {
		return fmt.Errorf("archiving article %d: %w", id, err)
	}

	return nil
}
