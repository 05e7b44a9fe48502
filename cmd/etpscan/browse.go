package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/etpscan/internal/config"
	"github.com/Veraticus/etpscan/internal/storage"
	"github.com/Veraticus/etpscan/internal/tui"
	"github.com/Veraticus/etpscan/internal/tui/themes"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [RUN_ID]",
		Short: "Browse the candidates of a stored run",
		Long:  `Open an interactive table of a stored run's candidates. The latest run is shown when no ID is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			var runID string
			if len(args) == 1 {
				runID = args[0]
			}
			return tui.Browse(ctx, store, runID, tui.WithTheme(themes.ByName(viper.GetString("ui.theme"))))
		},
	}
}
