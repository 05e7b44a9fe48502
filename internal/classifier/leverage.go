package classifier

// isLeverage reports an explicit multiplier, or a leverage brand next to a bull/bear token.
func (c *Classifier) isLeverage(folded string) bool {
	if c.t.leverageNumeric.Match(folded) {
		return true
	}
	return c.t.leverageBrand.Match(folded) && c.t.bullBear.Match(folded)
}

// isInverse reports a direction signal that is not a maturity or cash phrase.
func (c *Classifier) isInverse(folded string) bool {
	return c.guardedInverse(folded)
}
