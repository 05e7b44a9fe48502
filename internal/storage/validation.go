// Package storage persists scan runs and their candidates.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/etpscan/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidRun       = errors.New("invalid run")
	ErrInvalidCandidate = errors.New("invalid candidate")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateRun(run *model.ScanRun) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: started_at is zero", ErrInvalidRun)
	}
	if strings.TrimSpace(run.DateDir) == "" {
		return fmt.Errorf("%w: date_dir is empty", ErrInvalidRun)
	}
	if run.TotalRows < 0 || run.Skipped < 0 || run.Matched < 0 {
		return fmt.Errorf("%w: negative counters", ErrInvalidRun)
	}
	return nil
}

func validateCandidates(candidates []model.Candidate) error {
	seen := make(map[string]bool, len(candidates))
	for i, c := range candidates {
		if strings.TrimSpace(c.Symbol) == "" {
			return fmt.Errorf("%w at index %d: empty symbol", ErrInvalidCandidate, i)
		}
		if !c.Category.IsValid() {
			return fmt.Errorf("%w at index %d: unknown category %q", ErrInvalidCandidate, i, c.Category)
		}
		if seen[c.Symbol] {
			return fmt.Errorf("%w at index %d: duplicate symbol %s", ErrInvalidCandidate, i, c.Symbol)
		}
		seen[c.Symbol] = true
	}
	return nil
}
