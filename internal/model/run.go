package model

import (
	"sort"
	"time"
)

// ScanRun describes one execution of the scanner.
type ScanRun struct {
	StartedAt time.Time     `json:"started_at"`
	ID        string        `json:"id"`
	SourceURL string        `json:"source_url"`
	DateDir   string        `json:"date_dir"`
	TotalRows int           `json:"total_rows"`
	Skipped   int           `json:"skipped"`
	Matched   int           `json:"matched"`
	Duration  time.Duration `json:"duration"`
}

// RunDiff lists symbols that appeared, disappeared or changed category between two runs.
type RunDiff struct {
	From    string      `json:"from"`
	To      string      `json:"to"`
	Added   []Candidate `json:"added"`
	Removed []Candidate `json:"removed"`
	Changed []Candidate `json:"changed"`
}

// Diff compares two candidate lists by symbol. A symbol whose category or type changed is reported
// once, under Changed, with its newer values.
func Diff(fromID, toID string, from, to []Candidate) RunDiff {
	d := RunDiff{From: fromID, To: toID, Added: []Candidate{}, Removed: []Candidate{}, Changed: []Candidate{}}

	before := make(map[string]Candidate, len(from))
	for _, c := range from {
		before[c.Symbol] = c
	}
	after := make(map[string]bool, len(to))

	for _, c := range to {
		after[c.Symbol] = true
		prev, ok := before[c.Symbol]
		switch {
		case !ok:
			d.Added = append(d.Added, c)
		case prev.Category != c.Category || prev.ETPType != c.ETPType:
			d.Changed = append(d.Changed, c)
		}
	}
	for _, c := range from {
		if !after[c.Symbol] {
			d.Removed = append(d.Removed, c)
		}
	}

	sortBySymbol(d.Added)
	sortBySymbol(d.Removed)
	sortBySymbol(d.Changed)
	return d
}

// IsEmpty reports whether the two runs had the same candidates.
func (d RunDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

func sortBySymbol(cs []Candidate) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Symbol < cs[j].Symbol })
}
