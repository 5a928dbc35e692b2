package zendesk

import (
	"context"
	"fmt"
	"strings"
)

// SortOrder is the direction of a sorted listing.
type SortOrder string

// Sort orders accepted by Zendesk list endpoints.
const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// Pagination bounds for offset-paginated endpoints.
const (
	DefaultPerPage = 100
	MaxPerPage     = 100
	DefaultPage    = 1
)

// Chat pagination defaults. An ID of -1 means "no bound".
const (
	DefaultChatLimit = 200
	NoChatIDBound    = -1
)

// PaginationSpec describes one page of an offset-paginated listing.
type PaginationSpec struct {
	PerPage   int       `json:"per_page"             yaml:"per_page"`
	Page      int       `json:"page"                 yaml:"page"`
	SortBy    string    `json:"sort_by,omitempty"    yaml:"sort_by,omitempty"`
	SortOrder SortOrder `json:"sort_order,omitempty" yaml:"sort_order,omitempty"`
}

// PaginationOption customizes a PaginationSpec.
type PaginationOption func(*PaginationSpec)

// WithPerPage sets the page size. Values are clamped to [1, MaxPerPage].
func WithPerPage(perPage int) PaginationOption {
	return func(p *PaginationSpec) { p.PerPage = perPage }
}

// WithPage sets the 1-based page number.
func WithPage(page int) PaginationOption {
	return func(p *PaginationSpec) { p.Page = page }
}

// WithSortBy sets the sort field. An empty field disables sorting.
func WithSortBy(field string) PaginationOption {
	return func(p *PaginationSpec) { p.SortBy = field }
}

// WithSortOrder sets the sort direction. It only applies when a sort field is set.
func WithSortOrder(order SortOrder) PaginationOption {
	return func(p *PaginationSpec) { p.SortOrder = order }
}

// DefaultPagination returns the first page with the maximum page size.
func DefaultPagination() PaginationSpec {
	return PaginationSpec{PerPage: DefaultPerPage, Page: DefaultPage}
}

// NewPagination returns the default pagination with opts applied and normalized.
func NewPagination(opts ...PaginationOption) PaginationSpec {
	current := DefaultPagination()
	for _, opt := range opts {
		opt(&current)
	}

	return current.Normalized()
}

// BuildPagination returns the arguments for a paginated listing:
// per_page and page always, sort_by and sort_order only when a sort field is set.
func BuildPagination(opts ...PaginationOption) *Args {
	return NewPagination(opts...).Args()
}

// WithPerPage returns a copy with the page size replaced.
func (p PaginationSpec) WithPerPage(perPage int) PaginationSpec {
	p.PerPage = perPage

	return p.Normalized()
}

// WithPage returns a copy with the page number replaced.
func (p PaginationSpec) WithPage(page int) PaginationSpec {
	p.Page = page

	return p.Normalized()
}

// WithSort returns a copy sorted by field in the given order.
func (p PaginationSpec) WithSort(field string, order SortOrder) PaginationSpec {
	p.SortBy = field
	p.SortOrder = order

	return p.Normalized()
}

// Normalized clamps the page size and number and resolves the sort order.
func (p PaginationSpec) Normalized() PaginationSpec {
	switch {
	case p.PerPage <= 0:
		p.PerPage = DefaultPerPage
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}

	if p.Page < 1 {
		p.Page = DefaultPage
	}

	if p.SortBy == "" {
		p.SortOrder = ""

		return p
	}

	order := SortOrder(strings.ToLower(string(p.SortOrder)))
	if order != SortOrderAsc {
		order = SortOrderDesc
	}

	p.SortOrder = order

	return p
}

// Args converts the pagination to call arguments.
func (p PaginationSpec) Args() *Args {
	p = p.Normalized()

	args := NewArgs().
		Set("per_page", p.PerPage).
		Set("page", p.Page)

	if p.SortBy != "" {
		args.Set("sort_by", p.SortBy).Set("sort_order", string(p.SortOrder))
	}

	return args
}

// ChatPagination describes a cursor window over chat transcripts.
type ChatPagination struct {
	Limit   int   `json:"limit"    yaml:"limit"`
	SinceID int64 `json:"since_id" yaml:"since_id"`
	MaxID   int64 `json:"max_id"   yaml:"max_id"`
}

// DefaultChatPagination returns an unbounded window of DefaultChatLimit chats.
func DefaultChatPagination() ChatPagination {
	return ChatPagination{Limit: DefaultChatLimit, SinceID: NoChatIDBound, MaxID: NoChatIDBound}
}

// Args converts the window to call arguments. IDs equal to NoChatIDBound
// are omitted; zero is a valid bound.
func (c ChatPagination) Args() *Args {
	limit := c.Limit
	if limit <= 0 {
		limit = DefaultChatLimit
	}

	return NewArgs().
		Set("limit", limit).
		SetIf(c.SinceID != NoChatIDBound, "since_id", c.SinceID).
		SetIf(c.MaxID != NoChatIDBound, "max_id", c.MaxID)
}

// BuildChatPagination returns the arguments for a chat listing.
func BuildChatPagination(limit int, sinceID, maxID int64) *Args {
	return ChatPagination{Limit: limit, SinceID: sinceID, MaxID: maxID}.Args()
}

// ListPage is one page of a collection listing.
type ListPage struct {
	Items        []Object
	NextPage     string
	PreviousPage string
	Count        int
}

// NewListPage extracts the collection stored under key together with the
// next_page, previous_page and count metadata.
func NewListPage(body Object, key string) ListPage {
	count, _ := body.Int64("count")

	return ListPage{
		Items:        body.Objects(key),
		NextPage:     body.String("next_page"),
		PreviousPage: body.String("previous_page"),
		Count:        int(count),
	}
}

// HasNext reports whether another page is available.
func (p ListPage) HasNext() bool {
	return p.NextPage != ""
}

// PageFetcher fetches one page of a listing.
type PageFetcher func(ctx context.Context, page PaginationSpec) (Object, error)

// PaginationOptions controls multi-page traversal.
type PaginationOptions struct {
	PageSize int
	MaxPages int
	SortBy   string
	Order    SortOrder
}

// DefaultPaginationOptions returns options that walk every page at the maximum size.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{PageSize: DefaultPerPage}
}

func (o *PaginationOptions) firstPage() PaginationSpec {
	if o == nil {
		o = DefaultPaginationOptions()
	}

	return PaginationSpec{PerPage: o.PageSize, Page: DefaultPage, SortBy: o.SortBy, SortOrder: o.Order}.Normalized()
}

func (o *PaginationOptions) reachedLimit(pages int) bool {
	return o != nil && o.MaxPages > 0 && pages >= o.MaxPages
}

// FetchAllPages walks the listing from the first page and collects every
// object stored under key. A cancelled ctx returns the objects collected so
// far together with ctx.Err().
func FetchAllPages(ctx context.Context, fetch PageFetcher, key string, opts *PaginationOptions) ([]Object, error) {
	var all []Object

	for result := range StreamPages(ctx, fetch, key, opts) {
		if result.Err != nil {
			return all, result.Err
		}

		all = append(all, result.Items...)
	}

	err := ctx.Err()
	if err != nil {
		return all, fmt.Errorf("fetching %s: %w", key, err)
	}

	return all, nil
}

// PageResult is one page delivered by StreamPages.
type PageResult struct {
	Page  int
	Items []Object
	Count int
	Err   error
}

// StreamPages fetches pages in the background and delivers them on the
// returned channel, which is closed after the last page or the first error.
func StreamPages(ctx context.Context, fetch PageFetcher, key string, opts *PaginationOptions) <-chan PageResult {
	results := make(chan PageResult)

	go func() {
		defer close(results)

		current := opts.firstPage()

		for pages := 0; ; pages++ {
			if ctx.Err() != nil || opts.reachedLimit(pages) {
				return
			}

			body, err := fetch(ctx, current)
			if err != nil {
				send(ctx, results, PageResult{Page: current.Page, Err: fmt.Errorf("fetching page %d: %w", current.Page, err)})

				return
			}

			page := NewListPage(body, key)
			if !send(ctx, results, PageResult{Page: current.Page, Items: page.Items, Count: page.Count}) {
				return
			}

			if !page.HasNext() {
				return
			}

			current.Page++
		}
	}()

	return results
}

func send(ctx context.Context, results chan<- PageResult, result PageResult) bool {
	select {
	case results <- result:
		return true
	case <-ctx.Done():
		return false
	}
}
