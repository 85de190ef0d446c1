package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"shelf/internal/api"
)

type itemRequest struct {
	Title        string `json:"title"`
	Category     string `json:"category,omitempty"`
	Author       string `json:"author,omitempty"`
	ReleaseYear  int    `json:"releaseYear,omitempty"`
	Barcode      string `json:"barcode,omitempty"`
	Description  string `json:"description,omitempty"`
	LocationID   int64  `json:"locationId,omitempty"`
	CollectionID int64  `json:"collectionId,omitempty"`
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var req itemRequest
	var barcode string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an item to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			req.Title = strings.TrimSpace(args[0])
			if req.Title == "" {
				return fmt.Errorf("title is required")
			}

			if code := strings.TrimSpace(barcode); code != "" {
				if err := prefillFromBarcode(client, code, &req); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Barcode lookup failed: %v\n", err)
				}
				req.Barcode = code
			}

			var created api.Item
			if err := client.post("/api/items", req, &created); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s as %s\n", created.Title, created.InventoryNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Category, "category", "", "Item category (Book, CD, Film)")
	cmd.Flags().StringVar(&req.Author, "author", "", "Author or artist")
	cmd.Flags().IntVar(&req.ReleaseYear, "year", 0, "Release year")
	cmd.Flags().StringVar(&req.Description, "description", "", "Free-form description")
	cmd.Flags().Int64Var(&req.LocationID, "location", 0, "Location ID")
	cmd.Flags().StringVar(&barcode, "barcode", "", "Barcode to store and resolve metadata from")

	return cmd
}

// prefillFromBarcode asks the daemon to resolve the barcode and fills fields
// the caller left empty.
func prefillFromBarcode(client *apiClient, code string, req *itemRequest) error {
	var resolved struct {
		Success     bool   `json:"success"`
		Title       string `json:"title"`
		Author      string `json:"author"`
		Year        string `json:"year"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	params := url.Values{"code": {code}}
	if err := client.get("/api/lookup/barcode", params, &resolved); err != nil {
		return err
	}
	if !resolved.Success {
		return fmt.Errorf("no provider recognized %s", code)
	}
	if req.Author == "" {
		req.Author = resolved.Author
	}
	if req.Category == "" {
		req.Category = resolved.Category
	}
	if req.Description == "" {
		req.Description = resolved.Description
	}
	if req.ReleaseYear == 0 {
		fmt.Sscanf(resolved.Year, "%d", &req.ReleaseYear) //nolint:errcheck
	}
	return nil
}

func newLendCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lend <item-id> <borrower>",
		Short: "Record an item as lent out",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			borrower := strings.TrimSpace(args[1])
			if borrower == "" {
				return fmt.Errorf("borrower name is required")
			}
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			body := struct {
				Borrower string `json:"borrower"`
			}{Borrower: borrower}
			var item api.Item
			if err := client.post(fmt.Sprintf("/api/items/%d/lend", id), body, &item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s lent to %s\n", item.Title, item.LentTo)
			return nil
		},
	}
}

func newReturnCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "return <item-id>",
		Short: "Record a lent item as returned",
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
			if err := client.post(fmt.Sprintf("/api/items/%d/return", id), nil, &item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s returned\n", item.Title)
			return nil
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Delete an item from the catalog",
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
			if err := client.delete(fmt.Sprintf("/api/items/%d", id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Item %d removed\n", id)
			return nil
		},
	}
}
