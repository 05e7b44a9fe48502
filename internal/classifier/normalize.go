package classifier

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Name is a normalized instrument name.
type Name struct {
	// Original keeps the listing's casing; ticker shapes are matched against it.
	Original string
	// Folded is the lower-cased form used for vocabulary matching.
	Folded string
}

var punctuation = strings.NewReplacer(
	"‐", "-", "‑", "-", "‒", "-", "–", "-", "—", "-", "―", "-", "−", "-",
	"‘", "'", "’", "'",
)

// Normalize folds compatibility characters, unifies dashes and apostrophes, and collapses whitespace.
func Normalize(raw string) Name {
	if !utf8.ValidString(raw) {
		raw = strings.ToValidUTF8(raw, " ")
	}
	s := punctuation.Replace(norm.NFKC.String(raw))
	s = strings.Join(strings.Fields(s), " ")
	return Name{Original: s, Folded: strings.ToLower(s)}
}

// IsEmpty reports whether nothing is left after normalization.
func (n Name) IsEmpty() bool {
	return n.Folded == ""
}
