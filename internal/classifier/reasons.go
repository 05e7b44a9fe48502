package classifier

import "fmt"

// Reason tags emitted in a verdict's justification trail.
const (
	ReasonFundFlag          = "fund_flag_set"
	ReasonTypeNote          = "type_note_by_name"
	ReasonTypeTrust         = "type_trust_with_commodity"
	ReasonTypeFund          = "type_fund"
	ReasonBrandUltraPro     = "brand_ultrapro_implies_3x"
	ReasonBrandUltra        = "brand_proshares_ultra_implies_2x"
	ReasonBrandUltraShort   = "brand_proshares_ultrashort_implies_minus2x"
	ReasonInverseUnderBrand = "inverse_keyword_under_brand"
	ReasonLeverage          = "leverage_context"
	ReasonInverse           = "inverse_context"
	ReasonSingleStock       = "single_stock_detected"
	ReasonFutures           = "futures_keyword"
	ReasonPhysical          = "physical_keyword"
)

// ImpliedMultiplierReason returns the tag recording the multiplier a brand implies.
func ImpliedMultiplierReason(multiplier int) string {
	if multiplier <= 0 {
		return "implied_multiplier_unknown"
	}
	return fmt.Sprintf("implied_multiplier_%dx", multiplier)
}

// ReasonTags returns every tag a verdict may carry.
func ReasonTags() []string {
	return []string{
		ReasonFundFlag, ReasonTypeNote, ReasonTypeTrust, ReasonTypeFund,
		ReasonBrandUltraPro, ReasonBrandUltra, ReasonBrandUltraShort, ReasonInverseUnderBrand,
		ImpliedMultiplierReason(2), ImpliedMultiplierReason(3),
		ReasonLeverage, ReasonInverse, ReasonSingleStock, ReasonFutures, ReasonPhysical,
	}
}
