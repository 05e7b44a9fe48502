package nasdaq

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/etpscan/internal/common"
)

// SnapshotName is the file name of the raw copy kept next to each run's outputs.
const SnapshotName = "nasdaqtraded_raw.txt"

// maxListingSize bounds how much of a response body is read.
const maxListingSize = 64 << 20

// Fetcher downloads the listing file over HTTP or reads it from disk.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
	retry  common.RetryOptions
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithRetry sets the retry policy for HTTP downloads.
func WithRetry(opts common.RetryOptions) Option {
	return func(f *Fetcher) { f.retry = opts }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// NewFetcher creates a fetcher whose HTTP requests time out after timeout.
func NewFetcher(timeout time.Duration, opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: timeout},
		retry:  common.DefaultRetryOptions(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsRemote reports whether source names an http(s) URL rather than a local file.
func IsRemote(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// Fetch returns the raw bytes of the listing at source.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if !IsRemote(source) {
		path := strings.TrimPrefix(source, "file://")
		data, err := os.ReadFile(path) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("failed to read listing file %s: %w", path, err)
		}
		f.logger.Debug("read listing from disk", "path", path, "bytes", len(data))
		return data, nil
	}

	var data []byte
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		data, fetchErr = f.download(ctx, source)
		return fetchErr
	}, f.retry)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", source, err)
	}

	f.logger.Info("downloaded listing", "url", source, "bytes", len(data))
	return data, nil
}

func (f *Fetcher) download(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, common.Permanent(err)
	}
	req.Header.Set("User-Agent", "etpscan/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, common.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w", common.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, common.ErrRateLimit
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", common.ErrSourceUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, common.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxListingSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", common.ErrSourceUnavailable, err)
	}
	return data, nil
}

// SaveSnapshot writes data to dir/nasdaqtraded_raw.txt and returns the path.
func SaveSnapshot(dir string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	path := filepath.Join(dir, SnapshotName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return path, nil
}
