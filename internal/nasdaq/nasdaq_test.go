package nasdaq

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/etpscan/internal/common"
)

const sampleListing = "Nasdaq Traded|Symbol|Security Name|Listing Exchange|Market Category|ETF|Round Lot Size|Test Issue|Financial Status|CQS Symbol|NASDAQ Symbol|NextShares\n" +
	"Y|AAPL|Apple Inc. - Common Stock|Q|Q|N|100|N|N||AAPL|N\n" +
	"Y|TQQQ|ProShares UltraPro QQQ|Q|G|Y|100|N|N||TQQQ|N\n" +
	"Y|GLD|SPDR Gold Trust|P| |Y|100|N||GLD|GLD|N\n" +
	"Y|ZXZZT|NASDAQ TEST STOCK|Q|G|N|100|Y|N||ZXZZT|N\n" +
	"Y|SHORT|Short Row ETF|Q|G|Y\n" +
	"File Creation Time: 0314202517:02|||||||||||\n" +
	"Y|IGNORED|Should Not Appear|Q|G|N|100|N|N||IGNORED|N\n"

func TestParse(t *testing.T) {
	listing, err := Parse(strings.NewReader(sampleListing))
	require.NoError(t, err)

	require.Len(t, listing.Rows, 5)
	assert.Equal(t, "0314202517:02|||||||||||", listing.CreatedAt)
	assert.Len(t, listing.Header, 12)

	tqqq := listing.Rows[1]
	assert.Equal(t, "TQQQ", tqqq.Symbol)
	assert.Equal(t, "ProShares UltraPro QQQ", tqqq.SecurityName)
	assert.True(t, tqqq.Record().IsFundFlagged)
	assert.False(t, tqqq.Record().IsTestIssue)

	assert.Equal(t, "", listing.Rows[2].MarketCategory)
	assert.True(t, listing.Rows[3].Record().IsTestIssue)

	short := listing.Rows[4]
	assert.Equal(t, "Y", short.ETF)
	assert.Equal(t, "", short.TestIssue)
	assert.Equal(t, "", short.NextShares)
}

func TestParseFindsHeaderAfterPreamble(t *testing.T) {
	input := "\ufeff# generated listing\r\n\r\n\ufeffNasdaq Traded|Symbol|Security Name|Listing Exchange|ETF|Test Issue\r\n" +
		"Y|SLV|iShares Silver Trust|P|Y|N\r\n"

	listing, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, listing.Rows, 1)
	assert.Equal(t, "iShares Silver Trust", listing.Rows[0].SecurityName)
	assert.Equal(t, "Y", listing.Rows[0].ETF)
	assert.Empty(t, listing.CreatedAt)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "no header", input: "Y|AAPL|Apple Inc.|Q|Q|N\n"},
		{name: "no security name column", input: "Nasdaq Traded|Symbol|Exchange|ETF|Test Issue\nY|A|Q|N|N\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.input))
			require.ErrorIs(t, err, common.ErrMalformedListing)
		})
	}
}

func quietFetcher(opts ...Option) *Fetcher {
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithRetry(common.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}),
	}
	return NewFetcher(5*time.Second, append(base, opts...)...)
}

func TestFetchHTTPRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, sampleListing)
	}))
	defer srv.Close()

	data, err := quietFetcher(WithHTTPClient(srv.Client())).Fetch(context.Background(), srv.URL+"/nasdaqtraded.txt")
	require.NoError(t, err)
	assert.Equal(t, sampleListing, string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchHTTPClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := quietFetcher().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchHTTPGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := quietFetcher().Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, common.ErrMaxRetries)
	require.ErrorIs(t, err, common.ErrSourceUnavailable)
}

func TestFetchLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nasdaqtraded.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleListing), 0o600))

	f := quietFetcher()
	for _, source := range []string{path, "file://" + path} {
		data, err := f.Fetch(context.Background(), source)
		require.NoError(t, err)
		assert.Equal(t, sampleListing, string(data))
	}

	_, err := f.Fetch(context.Background(), filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "2025-03-14")

	path, err := SaveSnapshot(dir, []byte(sampleListing))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SnapshotName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleListing, string(data))
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://www.nasdaqtrader.com/dynamic/SymDir/nasdaqtraded.txt"))
	assert.True(t, IsRemote("http://localhost:8080/x"))
	assert.False(t, IsRemote("/tmp/nasdaqtraded.txt"))
	assert.False(t, IsRemote("file:///tmp/nasdaqtraded.txt"))
	assert.False(t, IsRemote("testdata/nasdaqtraded.txt"))
}
