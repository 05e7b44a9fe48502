// Package engine runs a full scan: fetch the listing, classify every row and hand the candidates
// to the output collaborators.
package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/etpscan/internal/classifier"
	"github.com/Veraticus/etpscan/internal/model"
)

// ScanResult is what the scanner produced from one listing.
type ScanResult struct {
	Candidates []model.Candidate
	TotalRows  int
	Skipped    int
}

// Scanner classifies parsed listing rows.
type Scanner struct {
	classifier        *classifier.Classifier
	onProgress        func(done, total int)
	workers           int
	includeTestIssues bool
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithClassifier replaces the default classifier.
func WithClassifier(c *classifier.Classifier) ScannerOption {
	return func(s *Scanner) { s.classifier = c }
}

// WithWorkers sets the classification parallelism.
func WithWorkers(n int) ScannerOption {
	return func(s *Scanner) { s.workers = n }
}

// WithTestIssues keeps rows flagged as test issues.
func WithTestIssues(include bool) ScannerOption {
	return func(s *Scanner) { s.includeTestIssues = include }
}

// WithProgress registers a callback receiving the running number of classified rows.
func WithProgress(fn func(done, total int)) ScannerOption {
	return func(s *Scanner) { s.onProgress = fn }
}

// NewScanner creates a scanner using the default rules.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{classifier: classifier.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan filters rows, classifies the rest and returns the matches sorted by symbol.
// Rows that are not traded, test issues, blank symbols and repeated symbols are skipped.
func (s *Scanner) Scan(ctx context.Context, rows []model.Listing, ts time.Time) (*ScanResult, error) {
	result := &ScanResult{TotalRows: len(rows)}

	records := make([]model.InstrumentRecord, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		rec := row.Record()
		rec.Symbol = strings.TrimSpace(rec.Symbol)
		switch {
		case rec.Symbol == "", seen[rec.Symbol], !row.IsTraded():
			result.Skipped++
			continue
		case rec.IsTestIssue && !s.includeTestIssues:
			result.Skipped++
			continue
		}
		seen[rec.Symbol] = true
		records = append(records, rec)
	}

	opts := classifier.BatchOptions{Workers: s.workers}
	if s.onProgress != nil {
		progress := newCounter(len(records), s.onProgress)
		opts.OnProgress = progress.add
	}

	verdicts, err := s.classifier.ClassifyAll(ctx, records, opts)
	if err != nil {
		return nil, fmt.Errorf("classification interrupted: %w", err)
	}

	for i, v := range verdicts {
		if !v.Matched {
			continue
		}
		result.Candidates = append(result.Candidates, model.NewCandidate(records[i], v, ts))
	}
	sort.Slice(result.Candidates, func(i, j int) bool {
		return result.Candidates[i].Symbol < result.Candidates[j].Symbol
	})

	return result, nil
}
