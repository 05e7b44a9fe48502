package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/Veraticus/etpscan/internal/common"
	"github.com/Veraticus/etpscan/internal/config"
	"github.com/Veraticus/etpscan/internal/metrics"
	"github.com/Veraticus/etpscan/internal/model"
	"github.com/Veraticus/etpscan/internal/nasdaq"
	"github.com/Veraticus/etpscan/internal/output"
	"github.com/Veraticus/etpscan/internal/report"
)

// DateLayout names the per-day output directory.
const DateLayout = "2006-01-02"

// Source returns the raw listing file.
type Source interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// Store persists a finished run.
type Store interface {
	SaveRun(ctx context.Context, run *model.ScanRun, candidates []model.Candidate) error
}

// Exporter publishes candidates somewhere outside the output directory and returns where.
type Exporter interface {
	Write(ctx context.Context, run model.ScanRun, candidates []model.Candidate) (string, error)
}

// Summary is printed after a scan.
type Summary struct {
	Outputs    map[string]string      `json:"outputs"`
	Categories map[model.Category]int `json:"categories"`
	PDF        *string                `json:"pdf"`
	DateDir    string                 `json:"date_dir"`
	RunID      string                 `json:"run_id,omitempty"`
	Snapshot   string                 `json:"snapshot"`
	Sheet      string                 `json:"sheet,omitempty"`
	Latest     []string               `json:"latest,omitempty"`
	Count      int                    `json:"count"`
}

// Runner wires the scan steps together.
type Runner struct {
	cfg      *config.Config
	source   Source
	store    Store
	exporter Exporter
	logger   *slog.Logger
	now      func() time.Time
	progress func(done, total int)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithStore saves each run.
func WithStore(s Store) RunnerOption {
	return func(r *Runner) { r.store = s }
}

// WithExporter sends the candidates to an external sheet.
func WithExporter(e Exporter) RunnerOption {
	return func(r *Runner) { r.exporter = e }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// WithScanProgress reports classification progress.
func WithScanProgress(fn func(done, total int)) RunnerOption {
	return func(r *Runner) { r.progress = fn }
}

// NewRunner creates a runner for cfg reading from source.
func NewRunner(cfg *config.Config, source Source, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:    cfg,
		source: source,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Timestamp returns now in the configured zone, truncated to the second.
func (r *Runner) Timestamp() time.Time {
	loc := r.cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return r.now().In(loc).Truncate(time.Second)
}

// Run performs one scan and returns its summary.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	started := time.Now()
	ts := r.Timestamp()
	dateDir := ts.Format(DateLayout)
	dayDir := filepath.Join(r.cfg.OutputDir, dateDir)

	r.logger.Info("Starting scan", "source", r.cfg.SourceURL, "date_dir", dateDir)

	raw, err := r.source.Fetch(ctx, r.cfg.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	snapshot, err := nasdaq.SaveSnapshot(dayDir, raw)
	if err != nil {
		return nil, err
	}

	listing, err := nasdaq.ParseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}
	if len(listing.Rows) == 0 {
		return nil, fmt.Errorf("%w in %s", common.ErrNoRecords, r.cfg.SourceURL)
	}
	r.logger.Debug("Parsed listing", "rows", len(listing.Rows), "created_at", listing.CreatedAt)

	scanner := NewScanner(
		WithWorkers(r.cfg.Workers),
		WithTestIssues(r.cfg.IncludeTestIssues),
		WithProgress(r.progress),
	)
	result, err := scanner.Scan(ctx, listing.Rows, ts)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Classified listing",
		"rows", result.TotalRows,
		"skipped", result.Skipped,
		"candidates", len(result.Candidates))

	outputs, err := output.WriteAll(dayDir, r.cfg.Formats, ts, result.Candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to write outputs: %w", err)
	}

	summary := &Summary{
		Count:      len(result.Candidates),
		Categories: model.CountByCategory(result.Candidates),
		Outputs:    outputs,
		DateDir:    dateDir,
		Snapshot:   snapshot,
	}

	if r.cfg.Latest {
		summary.Latest, err = output.MirrorLatest(r.cfg.OutputDir, sortedValues(outputs))
		if err != nil {
			return nil, fmt.Errorf("failed to update latest outputs: %w", err)
		}
	}

	run := model.ScanRun{
		StartedAt: ts,
		SourceURL: r.cfg.SourceURL,
		DateDir:   dateDir,
		TotalRows: result.TotalRows,
		Skipped:   result.Skipped,
		Matched:   len(result.Candidates),
	}

	if r.store != nil {
		run.Duration = time.Since(started)
		if err := r.store.SaveRun(ctx, &run, result.Candidates); err != nil {
			return nil, fmt.Errorf("failed to store run: %w", err)
		}
		summary.RunID = run.ID
	}

	if r.cfg.PDF {
		path, err := report.WriteFile(dayDir, report.Meta{
			GeneratedAt: ts,
			RunID:       run.ID,
			SourceURL:   run.SourceURL,
			DateDir:     dateDir,
			Outputs:     outputs,
			TotalRows:   run.TotalRows,
			Skipped:     run.Skipped,
		}, result.Candidates)
		if err != nil {
			return nil, err
		}
		summary.PDF = &path
	}

	if r.exporter != nil {
		url, err := r.exporter.Write(ctx, run, result.Candidates)
		if err != nil {
			// Local outputs are already written; a failed upload should not fail the scan.
			r.logger.Warn("Failed to export to sheet", "error", err)
		} else {
			summary.Sheet = url
		}
	}

	run.Duration = time.Since(started)
	if r.cfg.MetricsFile != "" {
		m := metrics.New()
		m.Observe(run, result.Candidates)
		if err := m.WriteTextfile(r.cfg.MetricsFile); err != nil {
			return nil, err
		}
	}

	r.logger.Info("Scan complete", "candidates", summary.Count, "duration", run.Duration)
	return summary, nil
}

func sortedValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
