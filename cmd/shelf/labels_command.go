package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shelf/internal/api"
)

func newLabelsCommand(ctx *commandContext) *cobra.Command {
	var startAt int

	cmd := &cobra.Command{
		Use:   "labels <item-id>...",
		Short: "Compute a label sheet layout for items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseItemID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			body := struct {
				ItemIDs []int64 `json:"itemIds"`
				StartAt int     `json:"startAt"`
			}{ItemIDs: ids, StartAt: startAt}

			var sheet api.LabelSheet
			if err := client.post("/api/labels", body, &sheet); err != nil {
				return err
			}

			rows := make([][]string, 0, len(sheet.Labels))
			for _, slot := range sheet.Labels {
				item := "(blank)"
				if !slot.Blank {
					item = strconv.FormatInt(slot.ItemID, 10)
				}
				rows = append(rows, []string{
					item,
					strconv.Itoa(slot.Row + 1),
					strconv.Itoa(slot.Column + 1),
					formatMillimeters(slot.X),
					formatMillimeters(slot.Y),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Item", "Row", "Col", "X", "Y"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
				nil,
			))
			fmt.Fprintf(out, "%d column(s), QR %s, font %.1fpt\n",
				sheet.Columns, formatMillimeters(sheet.QRSize), sheet.FontSize)
			return nil
		},
	}

	cmd.Flags().IntVar(&startAt, "start-at", 1, "First label slot to use on a partially used sheet")
	return cmd
}

func formatMillimeters(value float64) string {
	formatted := strconv.FormatFloat(value, 'f', 1, 64)
	return strings.TrimSuffix(formatted, ".0") + "mm"
}
