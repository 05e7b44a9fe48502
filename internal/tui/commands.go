package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/etpscan/internal/model"
)

const loadTimeout = 30 * time.Second

// Store is the read side of the run history.
type Store interface {
	GetRun(ctx context.Context, id string) (*model.ScanRun, error)
	LatestRun(ctx context.Context) (*model.ScanRun, error)
	GetCandidates(ctx context.Context, runID string) ([]model.Candidate, error)
}

// loadRun fetches a run, or the latest one when id is empty.
func loadRun(ctx context.Context, store Store, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()

		var (
			run *model.ScanRun
			err error
		)
		if id == "" {
			run, err = store.LatestRun(ctx)
		} else {
			run, err = store.GetRun(ctx, id)
		}
		if err != nil {
			return runLoadedMsg{err: fmt.Errorf("failed to load run: %w", err)}
		}

		candidates, err := store.GetCandidates(ctx, run.ID)
		if err != nil {
			return runLoadedMsg{err: fmt.Errorf("failed to load candidates: %w", err)}
		}
		return runLoadedMsg{run: run, candidates: candidates}
	}
}
