package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the shelf daemon is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			var health struct {
				Status string `json:"status"`
			}
			if err := client.get("/api/health", nil, &health); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Daemon at %s: %s\n", client.baseURL, health.Status)
			if cfg, cfgErr := ctx.ensureConfig(); cfgErr == nil && cfg != nil {
				fmt.Fprintf(out, "Database: %s\n", cfg.DatabasePath())
				fmt.Fprintf(out, "Auth token configured: %s\n", yesNo(cfg.Paths.APIToken != ""))
			}
			return nil
		},
	}
}
