// Package model defines the core data structures for the etpscan application.
package model

// Flags are the listing flags the classifier consults besides the name.
type Flags struct {
	IsFundFlagged bool `json:"is_fund_flagged"`
	IsTestIssue   bool `json:"is_test_issue"`
}

// InstrumentRecord is one row of the listing feed as seen by the classifier.
type InstrumentRecord struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Flags
}

// Listing is a parsed row of nasdaqtraded.txt.
type Listing struct {
	NasdaqTraded    string
	Symbol          string
	SecurityName    string
	ListingExchange string
	MarketCategory  string
	ETF             string
	RoundLotSize    string
	TestIssue       string
	FinancialStatus string
	CQSSymbol       string
	NasdaqSymbol    string
	NextShares      string
}

// Record converts the listing into the classifier's input. Missing flags count as false.
func (l Listing) Record() InstrumentRecord {
	return InstrumentRecord{
		Symbol: l.Symbol,
		Name:   l.SecurityName,
		Flags: Flags{
			IsFundFlagged: isYes(l.ETF),
			IsTestIssue:   isYes(l.TestIssue),
		},
	}
}

// IsTraded reports whether the row is marked as traded. An empty column counts as traded.
func (l Listing) IsTraded() bool {
	return l.NasdaqTraded == "" || isYes(l.NasdaqTraded)
}

func isYes(s string) bool {
	return s == "Y" || s == "y"
}
