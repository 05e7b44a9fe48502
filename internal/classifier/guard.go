package classifier

import "github.com/Veraticus/etpscan/internal/rules"

// guardAllows reports whether a "short"-style signal in folded may be read as a direction.
// It returns false when a duration or cash phrase is present and no explicit bearish token
// (bear, -1x, -2x) appears outside the excluded spans.
func (c *Classifier) guardAllows(folded string) bool {
	excluded := c.t.durationExclusion.Hits(folded)
	if len(excluded) == 0 {
		return true
	}
	return c.t.bearish.Match(mask(folded, excluded))
}

// guardedInverse reports whether folded carries an inverse signal that survives the duration guard.
func (c *Classifier) guardedInverse(folded string) bool {
	return c.t.inverse.Match(folded) && c.guardAllows(folded)
}

// mask blanks the hit spans so later matches only see the remaining text.
func mask(s string, hits []rules.Hit) string {
	b := []byte(s)
	for _, h := range hits {
		for i := h.Start; i < h.End && i < len(b); i++ {
			b[i] = ' '
		}
	}
	return string(b)
}
