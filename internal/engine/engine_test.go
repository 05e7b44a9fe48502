package engine

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Veraticus/etpscan/internal/common"
	"github.com/Veraticus/etpscan/internal/config"
	"github.com/Veraticus/etpscan/internal/model"
	"github.com/Veraticus/etpscan/internal/nasdaq"
	"github.com/Veraticus/etpscan/internal/report"
	"github.com/Veraticus/etpscan/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const listingHeader = "Nasdaq Traded|Symbol|Security Name|Listing Exchange|Market Category|ETF|Round Lot Size|Test Issue|Financial Status|CQS Symbol|NASDAQ Symbol|NextShares\n"

const testListing = listingHeader +
	"Y|AAPL|Apple Inc. - Common Stock|Q|Q|N|100|N|N||AAPL|N\n" +
	"Y|TQQQ|ProShares UltraPro QQQ|Q|G|Y|100|N|N||TQQQ|N\n" +
	"Y|DXD|ProShares UltraShort Dow30|P| |Y|100|N||DXD|DXD|N\n" +
	"Y|GLD|SPDR Gold Trust|P| |Y|100|N||GLD|GLD|N\n" +
	"Y|ZXZZT|ProShares UltraPro Test Fund|Q|G|Y|100|Y|N||ZXZZT|N\n" +
	"N|AGQ|ProShares Ultra Silver|P| |Y|100|N||AGQ|AGQ|N\n" +
	"Y|TQQQ|ProShares UltraPro QQQ|Q|G|Y|100|N|N||TQQQ|N\n" +
	"Y|SMMU|Allspring Ultra Short Municipal ETF|P| |Y|100|N||SMMU|SMMU|N\n" +
	"File Creation Time: 0314202517:02|||||||||||\n"

func parseRows(t *testing.T) []model.Listing {
	t.Helper()
	listing, err := nasdaq.ParseBytes([]byte(testListing))
	require.NoError(t, err)
	return listing.Rows
}

func symbols(cands []model.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Symbol)
	}
	return out
}

func TestScannerScan(t *testing.T) {
	ts := time.Date(2025, 3, 14, 17, 2, 0, 0, time.UTC)

	result, err := NewScanner(WithWorkers(2)).Scan(context.Background(), parseRows(t), ts)
	require.NoError(t, err)

	assert.Equal(t, 8, result.TotalRows)
	assert.Equal(t, 3, result.Skipped, "test issue, untraded row and repeated symbol")
	assert.Equal(t, []string{"DXD", "GLD", "TQQQ"}, symbols(result.Candidates))

	byCat := model.CountByCategory(result.Candidates)
	assert.Equal(t, 1, byCat[model.CategoryLeveragedIndexLong])
	assert.Equal(t, 1, byCat[model.CategoryLeveragedIndexInverse])
	assert.Equal(t, 1, byCat[model.CategoryCommodityPhysicalTrust])

	for _, c := range result.Candidates {
		assert.Equal(t, ts, c.Timestamp)
		assert.NotEmpty(t, c.Reasons)
	}
}

func TestScannerIncludesTestIssues(t *testing.T) {
	result, err := NewScanner(WithTestIssues(true)).Scan(context.Background(), parseRows(t), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Skipped)
	assert.Contains(t, symbols(result.Candidates), "ZXZZT")
}

func TestScannerProgress(t *testing.T) {
	var last, total int
	calls := 0
	_, err := NewScanner(WithProgress(func(done, n int) {
		calls++
		last, total = done, n
	})).Scan(context.Background(), parseRows(t), time.Now())
	require.NoError(t, err)

	assert.Positive(t, calls)
	assert.Equal(t, 5, total)
	assert.Equal(t, total, last)
}

func TestScannerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner().Scan(ctx, parseRows(t), time.Now())
	require.ErrorIs(t, err, context.Canceled)
}

type fakeSource struct {
	err  error
	data string
	got  string
}

func (f *fakeSource) Fetch(_ context.Context, source string) ([]byte, error) {
	f.got = source
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.data), nil
}

type fakeStore struct {
	err        error
	run        *model.ScanRun
	candidates []model.Candidate
}

func (f *fakeStore) SaveRun(_ context.Context, run *model.ScanRun, candidates []model.Candidate) error {
	if f.err != nil {
		return f.err
	}
	run.ID = "run-1"
	f.run = run
	f.candidates = candidates
	return nil
}

type fakeExporter struct {
	err   error
	calls int
}

func (f *fakeExporter) Write(_ context.Context, _ model.ScanRun, _ []model.Candidate) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "https://docs.google.com/spreadsheets/d/abc", nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		SourceURL: "https://example.test/nasdaqtraded.txt",
		OutputDir: t.TempDir(),
		Formats:   []string{config.FormatCSV, config.FormatJSONL},
		Workers:   2,
		Location:  time.FixedZone("CDT", -5*60*60),
	}
}

// Late evening in Chicago is already the next day in UTC.
var fixedClock = func() time.Time { return time.Date(2025, 3, 15, 2, 0, 0, 500, time.UTC) }

func TestRunnerTimestamp(t *testing.T) {
	r := NewRunner(testConfig(t), &fakeSource{}, WithClock(fixedClock))

	ts := r.Timestamp()
	assert.Equal(t, "2025-03-14T21:00:00-05:00", ts.Format(time.RFC3339Nano))

	cfg := testConfig(t)
	cfg.Location = nil
	assert.Equal(t, time.UTC, NewRunner(cfg, &fakeSource{}, WithClock(fixedClock)).Timestamp().Location())
}

func TestRunnerRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.Latest = true
	cfg.PDF = true
	cfg.MetricsFile = filepath.Join(t.TempDir(), "etpscan.prom")

	source := &fakeSource{data: testListing}
	store := &fakeStore{}
	exporter := &fakeExporter{}

	r := NewRunner(cfg, source, WithStore(store), WithExporter(exporter), WithClock(fixedClock))
	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cfg.SourceURL, source.got)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 1, summary.Categories[model.CategoryCommodityPhysicalTrust])
	assert.Equal(t, "2025-03-14", summary.DateDir)
	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc", summary.Sheet)

	dayDir := filepath.Join(cfg.OutputDir, "2025-03-14")
	assert.Equal(t, filepath.Join(dayDir, nasdaq.SnapshotName), summary.Snapshot)
	raw, err := os.ReadFile(summary.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, testListing, string(raw))

	require.Len(t, summary.Outputs, 2)
	assert.Equal(t, filepath.Join(dayDir, "etp_candidates.csv"), summary.Outputs["csv"])
	assert.Equal(t, filepath.Join(dayDir, "etp_candidates.jsonl"), summary.Outputs["jsonl"])
	assert.Equal(t, []string{
		filepath.Join(cfg.OutputDir, "latest", "etp_candidates.csv"),
		filepath.Join(cfg.OutputDir, "latest", "etp_candidates.jsonl"),
	}, summary.Latest)

	csv, err := os.ReadFile(summary.Outputs["csv"])
	require.NoError(t, err)
	assert.Contains(t, string(csv), "TQQQ,ProShares UltraPro QQQ")

	require.NotNil(t, summary.PDF)
	assert.Equal(t, filepath.Join(dayDir, report.FileName), *summary.PDF)
	assert.FileExists(t, *summary.PDF)

	require.NotNil(t, store.run)
	assert.Equal(t, 8, store.run.TotalRows)
	assert.Equal(t, 3, store.run.Skipped)
	assert.Equal(t, 3, store.run.Matched)
	assert.Equal(t, "2025-03-14", store.run.DateDir)
	assert.Len(t, store.candidates, 3)

	prom, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "etpscan_candidates 3")
	assert.Contains(t, string(prom), "etpscan_rows_total 8")

	encoded, err := json.Marshal(summary)
	require.NoError(t, err)
	for _, key := range []string{`"count":3`, `"date_dir":"2025-03-14"`, `"run_id":"run-1"`, `"pdf":`} {
		assert.Contains(t, string(encoded), key)
	}
}

func TestRunnerMinimal(t *testing.T) {
	cfg := testConfig(t)

	summary, err := NewRunner(cfg, &fakeSource{data: testListing}, WithClock(fixedClock)).Run(context.Background())
	require.NoError(t, err)

	assert.Nil(t, summary.PDF)
	assert.Empty(t, summary.RunID)
	assert.Empty(t, summary.Latest)
	assert.NoDirExists(t, filepath.Join(cfg.OutputDir, "latest"))

	encoded, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"pdf":null`)
	assert.NotContains(t, string(encoded), "run_id")
}

func TestRunnerExportFailureIsNotFatal(t *testing.T) {
	exporter := &fakeExporter{err: errors.New("quota exceeded")}

	summary, err := NewRunner(testConfig(t), &fakeSource{data: testListing},
		WithExporter(exporter), WithClock(fixedClock)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, exporter.calls)
	assert.Empty(t, summary.Sheet)
}

func TestRunnerErrors(t *testing.T) {
	tests := []struct {
		source  *fakeSource
		store   *fakeStore
		wantErr error
		name    string
		wantMsg string
	}{
		{
			name:    "fetch failure",
			source:  &fakeSource{err: common.ErrSourceUnavailable},
			wantErr: common.ErrSourceUnavailable,
			wantMsg: "failed to fetch listing",
		},
		{
			name:    "malformed listing",
			source:  &fakeSource{data: "not a listing\n"},
			wantErr: common.ErrMalformedListing,
			wantMsg: "failed to parse listing",
		},
		{
			name:    "header only",
			source:  &fakeSource{data: listingHeader},
			wantErr: common.ErrNoRecords,
		},
		{
			name:    "store failure",
			source:  &fakeSource{data: testListing},
			store:   &fakeStore{err: common.ErrDatabaseCorrupted},
			wantErr: common.ErrDatabaseCorrupted,
			wantMsg: "failed to store run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []RunnerOption
			if tt.store != nil {
				opts = append(opts, WithStore(tt.store))
			}
			_, err := NewRunner(testConfig(t), tt.source, opts...).Run(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.True(t, strings.Contains(err.Error(), tt.wantMsg), err.Error())
			}
		})
	}
}

func TestRunnerWithSQLiteStore(t *testing.T) {
	db := testutil.SetupTestDB(t)

	summary, err := NewRunner(testConfig(t), &fakeSource{data: testListing},
		WithStore(db.Storage), WithClock(fixedClock)).Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, summary.RunID)

	run, err := db.Storage.GetRun(context.Background(), summary.RunID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", run.DateDir)
	assert.Equal(t, 3, run.Matched)

	stored, err := db.Storage.GetCandidates(context.Background(), summary.RunID)
	require.NoError(t, err)
	assert.Equal(t, []string{"DXD", "GLD", "TQQQ"}, symbols(stored))
}
