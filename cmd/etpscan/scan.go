package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/etpscan/internal/cli"
	"github.com/Veraticus/etpscan/internal/config"
	"github.com/Veraticus/etpscan/internal/engine"
	"github.com/Veraticus/etpscan/internal/nasdaq"
	"github.com/Veraticus/etpscan/internal/sheets"
	"github.com/Veraticus/etpscan/internal/storage"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Fetch the listing and write today's candidates",
		Long: `Fetch nasdaqtraded.txt, classify every traded row and write the matches to
<outdir>/<date>/etp_candidates.<ext>. The date is taken in the configured time zone.
A JSON summary is printed to stdout.`,
		RunE: runScan,
	}

	cmd.Flags().String("source", config.DefaultSourceURL, "listing URL or local file path")
	cmd.Flags().String("outdir", "outputs", "base output directory")
	cmd.Flags().StringSlice("format", []string{config.FormatCSV, config.FormatJSONL}, "output formats (csv, jsonl, json, yaml)")
	cmd.Flags().Int("workers", 0, "classification workers (default: number of CPUs)")
	cmd.Flags().Bool("latest", false, "also copy the outputs to <outdir>/latest")
	cmd.Flags().Bool("pdf", false, "write a PDF report next to the outputs")
	cmd.Flags().Bool("sheets", false, "export the candidates to Google Sheets")
	cmd.Flags().String("metrics-file", "", "write Prometheus metrics to this textfile")
	cmd.Flags().Bool("include-test-issues", false, "classify rows flagged as test issues")
	cmd.Flags().Bool("no-store", false, "do not record the run in the history database")

	bind := map[string]string{
		"source.url":               "source",
		"output.dir":               "outdir",
		"output.formats":           "format",
		"output.latest":            "latest",
		"output.pdf":               "pdf",
		"output.sheets":            "sheets",
		"output.metrics_file":      "metrics-file",
		"scan.include_test_issues": "include-test-issues",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, cmd.Flags().Lookup(flag))
	}

	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		viper.Set("scan.workers", workers)
	}
	if noStore, _ := cmd.Flags().GetBool("no-store"); noStore {
		viper.Set("database.enabled", false)
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, stop := interrupts.HandleInterrupts(cmd.Context(), true)
	defer stop()

	progress := cli.NewScanProgress(os.Stderr)
	opts := []engine.RunnerOption{
		engine.WithLogger(slog.Default()),
		engine.WithScanProgress(progress.Update),
	}

	if cfg.Store {
		store, err := storage.Open(ctx, cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close history database", "error", err)
			}
		}()
		opts = append(opts, engine.WithStore(store))
	}

	if cfg.Sheets {
		sheetsCfg, err := config.LoadSheetsConfig(viper.GetViper())
		if err != nil {
			return fmt.Errorf("invalid sheets configuration: %w", err)
		}
		writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
		if err != nil {
			return fmt.Errorf("failed to create sheets writer: %w", err)
		}
		opts = append(opts, engine.WithExporter(writer))
	}

	fetcher := nasdaq.NewFetcher(cfg.FetchTimeout, nasdaq.WithLogger(slog.Default()))
	summary, err := engine.NewRunner(cfg, fetcher, opts...).Run(ctx)
	if err != nil {
		if interrupts.WasInterrupted() {
			return fmt.Errorf("scan interrupted: %w", err)
		}
		return err
	}

	if cli.IsTerminal(os.Stderr) {
		fmt.Fprintln(os.Stderr, cli.RenderSummary(summary))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
