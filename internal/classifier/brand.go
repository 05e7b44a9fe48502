package classifier

// brandOutcome is what a product-line name implies on its own.
type brandOutcome struct {
	reasons    []string
	multiplier int
	fired      bool
	inverse    bool
}

// inferBrand checks the UltraPro, Ultra and UltraShort families in that order.
// The first family to fire sets the multiplier; every family that fires adds its reason.
func (c *Classifier) inferBrand(folded string) brandOutcome {
	var out brandOutcome
	fire := func(multiplier int, inverse bool, reason string) {
		if !out.fired {
			out.multiplier = multiplier
		}
		out.fired = true
		out.inverse = out.inverse || inverse
		out.reasons = append(out.reasons, reason)
	}

	ultraShort := c.t.brandUltraShort.Match(folded)

	if c.t.brandUltraPro.Match(folded) {
		fire(3, false, ReasonBrandUltraPro)
	}
	// Ultra applies only without a following Short, so "Ultra Short-Term" is not a long brand.
	if c.t.brandUltra.Match(folded) && !ultraShort && !c.t.brandUltraVeto.Match(folded) {
		fire(2, false, ReasonBrandUltra)
	}
	if ultraShort {
		fire(2, true, ReasonBrandUltraShort)
	}

	if out.fired && !out.inverse && c.t.brandInverseVocab.Match(folded) && c.guardAllows(folded) {
		out.inverse = true
		out.reasons = append(out.reasons, ReasonInverseUnderBrand)
	}

	return out
}
