package main

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shelf/internal/api"
)

func newItemsCommand(ctx *commandContext) *cobra.Command {
	var (
		query    string
		category string
		location string
		lent     string
		sort     string
		order    string
		limit    string
		page     int
		reset    bool
	)

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List catalog items",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			params := url.Values{}
			if reset {
				params.Set("reset", "1")
			}
			setIfPresent(params, "q", query)
			setIfPresent(params, "category", category)
			setIfPresent(params, "location", location)
			setIfPresent(params, "lent", lent)
			setIfPresent(params, "sort_field", sort)
			setIfPresent(params, "sort_order", order)
			setIfPresent(params, "limit", limit)
			if page > 1 {
				params.Set("page", strconv.Itoa(page))
			}

			var result api.ItemPage
			if err := client.get("/api/items", params, &result); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(result.Items))
			for _, item := range result.Items {
				year := ""
				if item.ReleaseYear > 0 {
					year = strconv.Itoa(item.ReleaseYear)
				}
				rows = append(rows, []string{
					item.InventoryNumber,
					item.Title,
					item.Author,
					year,
					item.Category,
					highlightLent(item.LentTo, colorize),
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"No.", "Title", "Author", "Year", "Category", "Lent To"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				[]int{1},
			))
			fmt.Fprintln(out, summarizePage(result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Free-text search over titles, authors, and track titles")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category (Book, CD, Film)")
	cmd.Flags().StringVar(&location, "location", "", "Filter by location ID")
	cmd.Flags().StringVar(&lent, "lent", "", "Filter by lending state (yes or no)")
	cmd.Flags().StringVar(&sort, "sort", "", "Sort field (title, author, year, category, added)")
	cmd.Flags().StringVar(&order, "order", "", "Sort order (asc or desc)")
	cmd.Flags().StringVar(&limit, "limit", "", "Page size, or 'all' for the full result set")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().BoolVar(&reset, "reset", false, "Discard the remembered view and show defaults")

	return cmd
}

func setIfPresent(params url.Values, key, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		params.Set(key, trimmed)
	}
}

func summarizePage(page api.ItemPage) string {
	if page.Pagination == nil {
		return fmt.Sprintf("%d item(s)", len(page.Items))
	}
	p := page.Pagination
	start := (p.Page-1)*p.PerPage + 1
	end := start + len(page.Items) - 1
	if len(page.Items) == 0 {
		return fmt.Sprintf("no items on page %d of %d total", p.Page, p.Total)
	}
	return fmt.Sprintf("items %d-%d of %d (page %d)", start, end, p.Total, p.Page)
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show full details for one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			var item api.Item
			if err := client.get(fmt.Sprintf("/api/items/%d", id), nil, &item); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderSectionHeader(item.Title, colorize))
			printField(out, "Inventory no.", item.InventoryNumber)
			printField(out, "Category", item.Category)
			printField(out, "Author", item.Author)
			if item.ReleaseYear > 0 {
				printField(out, "Year", strconv.Itoa(item.ReleaseYear))
			}
			printField(out, "Barcode", item.Barcode)
			printField(out, "Lent to", highlightLent(item.LentTo, colorize))
			printField(out, "Lent at", item.LentAt)
			printField(out, "Description", item.Description)

			if len(item.Tracks) > 0 {
				fmt.Fprintln(out)
				rows := make([][]string, 0, len(item.Tracks))
				for _, track := range item.Tracks {
					rows = append(rows, []string{
						strconv.Itoa(track.Position),
						track.Title,
						track.Duration,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Track", "Duration"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight},
					[]int{1},
				))
			}
			return nil
		},
	}
}

func printField(out io.Writer, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(out, "  %-14s %s\n", label+":", value)
}

func parseItemID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid item id %q", raw)
	}
	return id, nil
}
