package tui

import "github.com/Veraticus/etpscan/internal/model"

// runLoadedMsg carries a stored run and its candidates.
type runLoadedMsg struct {
	err        error
	run        *model.ScanRun
	candidates []model.Candidate
}
