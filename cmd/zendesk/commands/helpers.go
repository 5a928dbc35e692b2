package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/zendesk/internal/constants"
	"github.com/fivetwenty-io/zendesk/pkg/zdclient"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

const userAgent = "zendesk-cli"

// column maps a table header to a field of each listed object. Key may name
// alternatives separated by "|" and nested fields joined by ".".
type column struct {
	Header string
	Key    string
}

// clientConfig builds the library configuration from the CLI configuration.
func clientConfig(config *Config) (*zendesk.Config, error) {
	if config.Subdomain == "" {
		return nil, constants.ErrNoSubdomain
	}

	if config.Username == "" || config.APIKey == "" {
		return nil, constants.ErrNoCredentials
	}

	logger, err := NewLogger(os.Stderr, config.LogLevel)
	if err != nil {
		return nil, err
	}

	clientConfig := &zendesk.Config{
		Subdomain:   config.Subdomain,
		Username:    config.Username,
		APIKey:      config.APIKey,
		HTTPTimeout: constants.DefaultHTTPTimeout,
		Debug:       viper.GetBool("debug"),
		Logger:      logger,
		UserAgent:   userAgent,
		ErrorSink:   zendesk.LoggerSink(logger),
	}

	if viper.GetBool("retry") {
		clientConfig.RetryMax = constants.DefaultRetryMax
		clientConfig.RetryWaitMin = constants.DefaultRetryWaitMin
		clientConfig.RetryWaitMax = constants.DefaultRetryWaitMax
	}

	return clientConfig, nil
}

// createClient creates a client from the current configuration, scoped to
// the --as user when given.
func createClient(ctx context.Context) (zendesk.Client, error) { //nolint:ireturn
	config := loadConfig()

	clientConfig, err := clientConfig(config)
	if err != nil {
		return nil, err
	}

	var client zendesk.Client
	if config.Cache != nil {
		client, err = zdclient.NewWithCache(ctx, clientConfig, config.Cache)
	} else {
		client, err = zdclient.New(ctx, clientConfig)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if as := viper.GetString("as"); as != "" {
		return client.As(as), nil
	}

	return client, nil
}

// printStructured writes value as json or yaml. It reports false for table output.
func printStructured(out io.Writer, value interface{}) (bool, error) {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return true, encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		defer func() { _ = encoder.Close() }()

		return true, encoder.Encode(value)
	default:
		return false, nil
	}
}

// renderList prints the objects under key of a list response.
func renderList(out io.Writer, body zendesk.Object, key string, columns []column) error {
	handled, err := printStructured(out, body)
	if handled {
		return err
	}

	page := zendesk.NewListPage(body, key)
	if len(page.Items) == 0 {
		_, _ = fmt.Fprintf(out, "No %s found\n", strings.ReplaceAll(key, "_", " "))

		return nil
	}

	err = renderObjects(out, page.Items, columns)
	if err != nil {
		return err
	}

	if page.HasNext() {
		_, _ = fmt.Fprintf(out, "\nShowing %d of %d, more pages available (use --page or --all)\n", len(page.Items), page.Count)
	}

	return nil
}

// renderObjects prints items as a table.
func renderObjects(out io.Writer, items []zendesk.Object, columns []column) error {
	table := tablewriter.NewWriter(out)

	headers := make([]interface{}, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}

	table.Header(headers...)

	for _, item := range items {
		row := make([]interface{}, len(columns))
		for i, c := range columns {
			row[i] = cell(item, c.Key)
		}

		_ = table.Append(row...)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderDetail prints the object under key of a show response as property rows.
func renderDetail(out io.Writer, body zendesk.Object, key string, columns []column) error {
	handled, err := printStructured(out, body)
	if handled {
		return err
	}

	item, ok := body.Object(key)
	if !ok {
		item = body
	}

	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	for _, c := range columns {
		_ = table.Append(c.Header, cell(item, c.Key))
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func cell(item zendesk.Object, key string) string {
	for _, alternative := range strings.Split(key, "|") {
		if value := lookup(item, alternative); value != "" {
			return truncate(value, constants.DescriptionDisplayLength)
		}
	}

	return constants.NotAvailable
}

func lookup(item zendesk.Object, path string) string {
	parent, field, nested := strings.Cut(path, ".")
	if !nested {
		return item.String(path)
	}

	child, ok := item.Object(parent)
	if !ok {
		return ""
	}

	return lookup(child, field)
}

func truncate(value string, limit int) string {
	value = strings.Join(strings.Fields(value), " ")

	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}

	return string(runes[:limit-3]) + "..."
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// parseID parses a numeric resource identifier.
func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidID, value)
	}

	return id, nil
}

// pageFlags holds the pagination flags shared by list commands.
type pageFlags struct {
	perPage   int
	page      int
	sortBy    string
	sortOrder string
	all       bool
	maxPages  int
}

func addPageFlags(cmd *cobra.Command, flags *pageFlags) {
	cmd.Flags().IntVar(&flags.perPage, "per-page", zendesk.DefaultPerPage, "results per page (max 100)")
	cmd.Flags().IntVar(&flags.page, "page", zendesk.DefaultPage, "page number")
	cmd.Flags().StringVar(&flags.sortBy, "sort-by", "", "field to sort by")
	cmd.Flags().StringVar(&flags.sortOrder, "sort-order", string(zendesk.SortOrderDesc), "sort order (asc, desc)")
	cmd.Flags().BoolVar(&flags.all, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&flags.maxPages, "max-pages", 0, "maximum number of pages fetched with --all (0 for no limit)")
}

func (f *pageFlags) pagination() zendesk.PaginationSpec {
	return zendesk.NewPagination(
		zendesk.WithPerPage(f.perPage),
		zendesk.WithPage(f.page),
		zendesk.WithSortBy(f.sortBy),
		zendesk.WithSortOrder(zendesk.SortOrder(f.sortOrder)),
	)
}

func (f *pageFlags) options() *zendesk.PaginationOptions {
	return &zendesk.PaginationOptions{
		PageSize: f.perPage,
		MaxPages: f.maxPages,
		SortBy:   f.sortBy,
		Order:    zendesk.SortOrder(f.sortOrder),
	}
}

// listPages runs fetch once, or across every page with --all.
func listPages(ctx context.Context, out io.Writer, flags *pageFlags, fetch zendesk.PageFetcher, key string, columns []column) error {
	if !flags.all {
		body, err := fetch(ctx, flags.pagination())
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", key, err)
		}

		return renderList(out, body, key, columns)
	}

	items, err := zendesk.FetchAllPages(ctx, fetch, key, flags.options())
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", key, err)
	}

	handled, err := printStructured(out, items)
	if handled {
		return err
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintf(out, "No %s found\n", key)

		return nil
	}

	return renderObjects(out, items, columns)
}

// confirm asks a yes/no question on in and reports whether the answer was yes.
func confirm(in io.Reader, out io.Writer, question string) error {
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", question)

	answer, _ := bufio.NewReader(in).ReadString('\n')

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return constants.ErrConfirmationDeny
	}
}
