package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shelf/internal/api"
)

func newLocationsCommand(ctx *commandContext) *cobra.Command {
	locationsCmd := &cobra.Command{
		Use:   "locations",
		Short: "Manage storage locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocationsList(ctx, cmd)
		},
	}

	locationsCmd.AddCommand(newLocationsAddCommand(ctx))
	locationsCmd.AddCommand(newLocationsRemoveCommand(ctx))
	return locationsCmd
}

func runLocationsList(ctx *commandContext, cmd *cobra.Command) error {
	client, err := ctx.ensureClient()
	if err != nil {
		return err
	}

	var result struct {
		Locations []api.Location `json:"locations"`
	}
	if err := client.get("/api/locations", nil, &result); err != nil {
		return err
	}

	rows := make([][]string, 0, len(result.Locations))
	for _, loc := range result.Locations {
		path := loc.Path
		if path == "" {
			path = loc.Name
		}
		rows = append(rows, []string{
			strconv.FormatInt(loc.ID, 10),
			path,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"ID", "Location"},
		rows,
		[]columnAlignment{alignRight, alignLeft},
		[]int{1},
	))
	return nil
}

func newLocationsAddCommand(ctx *commandContext) *cobra.Command {
	var parentID int64

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a storage location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("location name is required")
			}
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			body := struct {
				Name     string `json:"name"`
				ParentID int64  `json:"parentId,omitempty"`
			}{Name: name, ParentID: parentID}

			var created api.Location
			if err := client.post("/api/locations", body, &created); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created location %d (%s)\n", created.ID, created.Name)
			return nil
		},
	}

	cmd.Flags().Int64Var(&parentID, "parent", 0, "Parent location ID")
	return cmd
}

func newLocationsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <location-id>",
		Short: "Delete an empty storage location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || id < 1 {
				return fmt.Errorf("invalid location id %q", args[0])
			}
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.delete(fmt.Sprintf("/api/locations/%d", id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Location %d removed\n", id)
			return nil
		},
	}
}
