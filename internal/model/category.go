package model

// Category is the exposure bucket a matched instrument falls into.
type Category string

// Category constants. A verdict carries at most one of them.
const (
	CategoryLeveragedSingleStockLong    Category = "leveraged_single_stock_long"
	CategoryLeveragedSingleStockInverse Category = "leveraged_single_stock_inverse"
	CategoryLeveragedIndexLong          Category = "leveraged_index_long"
	CategoryLeveragedIndexInverse       Category = "leveraged_index_inverse"
	CategoryCommodityFutures            Category = "commodity_futures"
	CategoryCryptoFutures               Category = "crypto_futures"
	CategoryCommodityPhysicalTrust      Category = "commodity_physical_trust"
	CategoryCryptoTrust                 Category = "crypto_trust"
)

// AllCategories returns every category in report order.
func AllCategories() []Category {
	return []Category{
		CategoryLeveragedSingleStockLong,
		CategoryLeveragedSingleStockInverse,
		CategoryLeveragedIndexLong,
		CategoryLeveragedIndexInverse,
		CategoryCommodityFutures,
		CategoryCryptoFutures,
		CategoryCommodityPhysicalTrust,
		CategoryCryptoTrust,
	}
}

// IsLeveraged reports whether the category is one of the leveraged/inverse variants.
func (c Category) IsLeveraged() bool {
	switch c {
	case CategoryLeveragedSingleStockLong, CategoryLeveragedSingleStockInverse,
		CategoryLeveragedIndexLong, CategoryLeveragedIndexInverse:
		return true
	}
	return false
}

// IsInverse reports whether the category targets the negative of its underlying.
func (c Category) IsInverse() bool {
	return c == CategoryLeveragedSingleStockInverse || c == CategoryLeveragedIndexInverse
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// LeveragedCategory picks the leveraged variant for a scope and direction.
func LeveragedCategory(singleStock, inverse bool) Category {
	switch {
	case singleStock && inverse:
		return CategoryLeveragedSingleStockInverse
	case singleStock:
		return CategoryLeveragedSingleStockLong
	case inverse:
		return CategoryLeveragedIndexInverse
	default:
		return CategoryLeveragedIndexLong
	}
}

// InstrumentType is the legal wrapper of an exchange traded product.
type InstrumentType string

// Instrument type constants.
const (
	InstrumentNote    InstrumentType = "Note"
	InstrumentTrust   InstrumentType = "Trust"
	InstrumentFund    InstrumentType = "Fund"
	InstrumentUnknown InstrumentType = "Unknown"
)
