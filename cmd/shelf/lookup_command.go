package main

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shelf/internal/resolve"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <barcode>",
		Short: "Resolve item metadata from a barcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.TrimSpace(args[0])
			if code == "" {
				return fmt.Errorf("barcode is required")
			}
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			var result resolve.Result
			if err := client.get("/api/lookup/barcode", url.Values{"code": {code}}, &result); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !result.Success {
				fmt.Fprintf(out, "No provider recognized %s\n", code)
				return nil
			}

			printField(out, "Title", result.Title)
			printField(out, "Author", result.Author)
			printField(out, "Year", result.Year)
			printField(out, "Category", result.Category)
			printField(out, "Cover", result.ImageURL)
			printField(out, "Description", result.Description)
			printTrackStubs(out, result.Tracks)
			return nil
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var artist string
	var title string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search release and streaming catalogs by artist and title",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(artist) == "" && strings.TrimSpace(title) == "" {
				return fmt.Errorf("at least one of --artist or --title is required")
			}
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			params := url.Values{}
			setIfPresent(params, "artist", artist)
			setIfPresent(params, "title", title)

			var result resolve.TextSearchResult
			if err := client.get("/api/lookup/search", params, &result); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			printTextMatch(out, "Release", result.Release, colorize)
			fmt.Fprintln(out)
			printTextMatch(out, "Streaming", result.Streaming, colorize)
			return nil
		},
	}

	cmd.Flags().StringVar(&artist, "artist", "", "Artist or author to search for")
	cmd.Flags().StringVar(&title, "title", "", "Album or title to search for")
	return cmd
}

func printTextMatch(out io.Writer, heading string, match resolve.TextMatch, colorize bool) {
	fmt.Fprintln(out, renderSectionHeader(heading, colorize))
	if !match.Success {
		message := match.Message
		if message == "" {
			message = "no match"
		}
		fmt.Fprintf(out, "  %s\n", message)
		return
	}
	printField(out, "Title", match.Title)
	printField(out, "Artist", match.Artist)
	printField(out, "Year", match.Year)
	printField(out, "Cover", match.ImageURL)
	printTrackStubs(out, match.Tracks)
}

func printTrackStubs(out io.Writer, tracks []resolve.TrackStub) {
	if len(tracks) == 0 {
		return
	}
	rows := make([][]string, 0, len(tracks))
	for _, track := range tracks {
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
