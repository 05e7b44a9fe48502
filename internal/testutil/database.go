// Package testutil provides shared test helpers: an in-memory history database and
// candidate fixtures covering every category.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/etpscan/internal/model"
	"github.com/Veraticus/etpscan/internal/storage"
)

// TestDB is an in-memory history database bound to a test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	run := db.SeedRun(time.Now(), testutil.SampleCandidates(time.Now()))
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	// Create in-memory SQLite storage
	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedRun stores a run started at ts holding candidates and returns it with its new ID.
func (db *TestDB) SeedRun(ts time.Time, candidates []model.Candidate) model.ScanRun {
	db.t.Helper()

	run := model.ScanRun{
		StartedAt: ts,
		SourceURL: "file://nasdaqtraded.txt",
		DateDir:   ts.Format("2006-01-02"),
		TotalRows: len(candidates) * 10,
		Matched:   len(candidates),
	}
	if err := db.Storage.SaveRun(context.Background(), &run, candidates); err != nil {
		db.t.Fatalf("failed to seed run: %v", err)
	}
	return run
}
