package model

import "time"

// Candidate is a matched instrument ready for output.
type Candidate struct {
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Symbol    string         `json:"symbol" yaml:"symbol"`
	Name      string         `json:"name" yaml:"name"`
	ETPType   InstrumentType `json:"etp_type" yaml:"etp_type"`
	Category  Category       `json:"category" yaml:"category"`
	Reasons   []string       `json:"reasons" yaml:"reasons"`
}

// NewCandidate builds a candidate from a record and its matched verdict.
func NewCandidate(rec InstrumentRecord, v Verdict, ts time.Time) Candidate {
	return Candidate{
		Timestamp: ts,
		Symbol:    rec.Symbol,
		Name:      rec.Name,
		ETPType:   v.Type,
		Category:  v.Category,
		Reasons:   append([]string(nil), v.Reasons...),
	}
}

// CountByCategory tallies candidates per category.
func CountByCategory(candidates []Candidate) map[Category]int {
	counts := make(map[Category]int)
	for _, c := range candidates {
		counts[c.Category]++
	}
	return counts
}
