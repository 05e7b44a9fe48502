package classifier

// isSingleStock looks for a ticker-shaped token next to a direction word in the case-preserving name.
// Index and wrapper acronyms such as QQQ or MSCI do not count as tickers.
func (c *Classifier) isSingleStock(original string) bool {
	for _, ticker := range c.t.singleStock.Submatches(original) {
		if !c.t.tickerException.Match(ticker) {
			return true
		}
	}
	return false
}
