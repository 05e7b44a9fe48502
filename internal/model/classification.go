package model

import (
	"errors"
	"fmt"
)

// ErrInvalidVerdict is returned by Verdict.Validate when an invariant is broken.
var ErrInvalidVerdict = errors.New("invalid verdict")

// Verdict is the outcome of classifying one instrument name.
// Category and Type are empty unless Matched; Reasons is non-empty when Matched.
type Verdict struct {
	Category Category       `json:"category,omitempty" yaml:"category,omitempty"`
	Type     InstrumentType `json:"instrument_type,omitempty" yaml:"instrument_type,omitempty"`
	Reasons  []string       `json:"reasons" yaml:"reasons"`
	Matched  bool           `json:"matched" yaml:"matched"`
}

// NoMatch returns the verdict for a name that is not a candidate.
func NoMatch() Verdict {
	return Verdict{Reasons: []string{}}
}

// NewMatch returns a matched verdict. Reasons are copied so the caller may keep reusing its slice.
func NewMatch(category Category, typ InstrumentType, reasons []string) Verdict {
	return Verdict{
		Matched:  true,
		Category: category,
		Type:     typ,
		Reasons:  append([]string(nil), reasons...),
	}
}

// HasReason reports whether tag appears in the justification trail.
func (v Verdict) HasReason(tag string) bool {
	for _, r := range v.Reasons {
		if r == tag {
			return true
		}
	}
	return false
}

// Validate checks the verdict invariants.
func (v Verdict) Validate() error {
	if !v.Matched {
		if v.Category != "" || v.Type != "" {
			return fmt.Errorf("%w: unmatched verdict carries category %q type %q", ErrInvalidVerdict, v.Category, v.Type)
		}
		return nil
	}
	if !v.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidVerdict, v.Category)
	}
	if v.Type == "" {
		return fmt.Errorf("%w: matched verdict without instrument type", ErrInvalidVerdict)
	}
	if len(v.Reasons) == 0 {
		return fmt.Errorf("%w: matched verdict without reasons", ErrInvalidVerdict)
	}
	return nil
}
