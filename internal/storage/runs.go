package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/etpscan/internal/common"
	"github.com/Veraticus/etpscan/internal/model"
)

// SaveRun stores a run and its candidates in one transaction. An empty run.ID is filled with a new UUID.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.ScanRun, candidates []model.Candidate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}
	if err := validateCandidates(candidates); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, source_url, date_dir, total_rows, skipped, matched, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.SourceURL, run.DateDir, run.TotalRows, run.Skipped, run.Matched, run.Duration.Milliseconds())
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("%w: run %s", common.ErrDuplicateEntry, run.ID)
		}
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO candidates (run_id, symbol, name, etp_type, category, reasons, observed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare candidate insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range candidates {
		reasons, err := json.Marshal(c.Reasons)
		if err != nil {
			return fmt.Errorf("failed to encode reasons for %s: %w", c.Symbol, err)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, c.Symbol, c.Name, string(c.ETPType), string(c.Category), string(reasons), c.Timestamp); err != nil {
			return fmt.Errorf("failed to insert candidate %s: %w", c.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

const runColumns = `id, started_at, source_url, date_dir, total_rows, skipped, matched, duration_ms`

func scanRun(row interface{ Scan(...any) error }) (model.ScanRun, error) {
	var run model.ScanRun
	var durationMS int64
	err := row.Scan(&run.ID, &run.StartedAt, &run.SourceURL, &run.DateDir, &run.TotalRows, &run.Skipped, &run.Matched, &durationMS)
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, err
}

// GetRun returns the run with the given ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.ScanRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns returns up to limit runs, newest first. A limit of zero or less returns all runs.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.ScanRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.ScanRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recent run.
func (s *SQLiteStorage) LatestRun(ctx context.Context) (*model.ScanRun, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs recorded: %w", common.ErrNotFound)
	}
	return &runs[0], nil
}

// GetCandidates returns the candidates of a run ordered by symbol.
func (s *SQLiteStorage) GetCandidates(ctx context.Context, runID string) ([]model.Candidate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(runID, "runID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, name, etp_type, category, reasons, observed_at
		FROM candidates WHERE run_id = ? ORDER BY symbol`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var candidates []model.Candidate
	for rows.Next() {
		var c model.Candidate
		var etpType, category, reasons string
		if err := rows.Scan(&c.Symbol, &c.Name, &etpType, &category, &reasons, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.ETPType = model.InstrumentType(etpType)
		c.Category = model.Category(category)
		if err := json.Unmarshal([]byte(reasons), &c.Reasons); err != nil {
			return nil, fmt.Errorf("%w: reasons for %s: %w", common.ErrDatabaseCorrupted, c.Symbol, err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// CategoryCounts returns the number of candidates per category in a run.
func (s *SQLiteStorage) CategoryCounts(ctx context.Context, runID string) (map[model.Category]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM candidates WHERE run_id = ? GROUP BY category`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.Category]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[model.Category(category)] = n
	}
	return counts, rows.Err()
}

// DiffRuns compares the candidates of two stored runs.
func (s *SQLiteStorage) DiffRuns(ctx context.Context, fromID, toID string) (*model.RunDiff, error) {
	if _, err := s.GetRun(ctx, fromID); err != nil {
		return nil, err
	}
	if _, err := s.GetRun(ctx, toID); err != nil {
		return nil, err
	}

	from, err := s.GetCandidates(ctx, fromID)
	if err != nil {
		return nil, err
	}
	to, err := s.GetCandidates(ctx, toID)
	if err != nil {
		return nil, err
	}

	d := model.Diff(fromID, toID, from, to)
	return &d, nil
}

// DeleteRun removes a run and its candidates.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	return nil
}
