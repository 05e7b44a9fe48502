package testutil

import (
	"time"

	"github.com/Veraticus/etpscan/internal/model"
)

// SampleCandidates returns one real-world candidate per category, sorted by symbol.
func SampleCandidates(ts time.Time) []model.Candidate {
	return []model.Candidate{
		candidate(ts, "BITO", "ProShares Bitcoin Strategy ETF", model.InstrumentFund, model.CategoryCryptoFutures,
			"fund_flag_set", "futures_keyword"),
		candidate(ts, "GLD", "SPDR Gold Trust", model.InstrumentTrust, model.CategoryCommodityPhysicalTrust,
			"trust_word", "commodity:gold"),
		candidate(ts, "IBIT", "iShares Bitcoin Trust ETF", model.InstrumentTrust, model.CategoryCryptoTrust,
			"trust_word", "crypto:bitcoin"),
		candidate(ts, "SQQQ", "ProShares UltraPro Short QQQ", model.InstrumentFund, model.CategoryLeveragedIndexInverse,
			"fund_flag_set", "brand:ultrapro", "implied_multiplier_3x"),
		candidate(ts, "TQQQ", "ProShares UltraPro QQQ", model.InstrumentFund, model.CategoryLeveragedIndexLong,
			"fund_flag_set", "brand:ultrapro", "implied_multiplier_3x"),
		candidate(ts, "TSLL", "Direxion Daily TSLA Bull 2X Shares", model.InstrumentFund, model.CategoryLeveragedSingleStockLong,
			"fund_flag_set", "leverage_context", "single_stock"),
		candidate(ts, "TSLS", "Direxion Daily TSLA Bear 1X Shares", model.InstrumentFund, model.CategoryLeveragedSingleStockInverse,
			"fund_flag_set", "inverse_context", "single_stock"),
		candidate(ts, "USO", "United States Oil Fund", model.InstrumentFund, model.CategoryCommodityFutures,
			"fund_flag_set", "futures_keyword"),
	}
}

func candidate(ts time.Time, symbol, name string, typ model.InstrumentType, cat model.Category, reasons ...string) model.Candidate {
	return model.Candidate{
		Timestamp: ts,
		Symbol:    symbol,
		Name:      name,
		ETPType:   typ,
		Category:  cat,
		Reasons:   reasons,
	}
}
