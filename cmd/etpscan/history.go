package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/etpscan/internal/cli"
	"github.com/Veraticus/etpscan/internal/common"
	"github.com/Veraticus/etpscan/internal/config"
	"github.com/Veraticus/etpscan/internal/model"
	"github.com/Veraticus/etpscan/internal/storage"
)

func historyCmd() *cobra.Command {
	var (
		limit  int
		diff   bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored scan runs",
		Long:  `List stored scan runs, newest first. With --diff, compare the two most recent runs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := storage.Open(ctx, config.ExpandPath(viper.GetString("database.path")))
			if err != nil {
				return fmt.Errorf("failed to open history database: %w", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					slog.Warn("Failed to close history database", "error", err)
				}
			}()

			if diff {
				runs, err := store.ListRuns(ctx, 2)
				if err != nil {
					return err
				}
				if len(runs) < 2 {
					return common.NewUserError("at least two stored runs are needed for --diff", nil)
				}
				d, err := store.DiffRuns(ctx, runs[1].ID, runs[0].ID)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, d)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderDiff(*d))
				return nil
			}

			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			if asJSON {
				if runs == nil {
					runs = []model.ScanRun{}
				}
				return writeJSON(cmd, runs)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRuns(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&diff, "diff", false, "show what changed between the two latest runs")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
