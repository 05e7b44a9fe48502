package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantOriginal string
		wantFolded   string
	}{
		{name: "collapses whitespace", input: "  SPDR   Gold\tTrust ", wantOriginal: "SPDR Gold Trust", wantFolded: "spdr gold trust"},
		{name: "no-break space", input: "Direxion\u00a0Daily", wantOriginal: "Direxion Daily", wantFolded: "direxion daily"},
		{name: "unicode dashes", input: "Fund –2x — Short", wantOriginal: "Fund -2x - Short", wantFolded: "fund -2x - short"},
		{name: "curly apostrophe", input: "Gov’t", wantOriginal: "Gov't", wantFolded: "gov't"},
		{name: "full width", input: "ＥＴＦ", wantOriginal: "ETF", wantFolded: "etf"},
		{name: "invalid utf8", input: "Gold\xffTrust", wantOriginal: "Gold Trust", wantFolded: "gold trust"},
		{name: "empty", input: " \t ", wantOriginal: "", wantFolded: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			assert.Equal(t, tt.wantOriginal, got.Original)
			assert.Equal(t, tt.wantFolded, got.Folded)
			assert.Equal(t, tt.wantFolded == "", got.IsEmpty())
		})
	}
}

func TestInferBrand(t *testing.T) {
	tests := []struct {
		name           string
		folded         string
		wantReasons    []string
		wantMultiplier int
		wantFired      bool
		wantInverse    bool
	}{
		{
			name:           "ultrapro",
			folded:         "proshares ultrapro qqq",
			wantFired:      true,
			wantMultiplier: 3,
			wantReasons:    []string{ReasonBrandUltraPro},
		},
		{
			name:           "ultra",
			folded:         "proshares ultra silver",
			wantFired:      true,
			wantMultiplier: 2,
			wantReasons:    []string{ReasonBrandUltra},
		},
		{
			name:           "ultrashort",
			folded:         "proshares ultrashort dow30",
			wantFired:      true,
			wantInverse:    true,
			wantMultiplier: 2,
			wantReasons:    []string{ReasonBrandUltraShort},
		},
		{
			name:           "spaced ultra short is the short family",
			folded:         "proshares ultra short qqq",
			wantFired:      true,
			wantInverse:    true,
			wantMultiplier: 2,
			wantReasons:    []string{ReasonBrandUltraShort},
		},
		{
			name:           "ultrapro with short upgrades direction",
			folded:         "proshares ultrapro short qqq",
			wantFired:      true,
			wantInverse:    true,
			wantMultiplier: 3,
			wantReasons:    []string{ReasonBrandUltraPro, ReasonInverseUnderBrand},
		},
		{
			name:   "ultra short-term is no brand",
			folded: "proshares ultra short-term treasury",
		},
		{
			name:   "no brand",
			folded: "direxion daily tsla bull 2x shares",
		},
	}

	c := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.inferBrand(tt.folded)
			assert.Equal(t, tt.wantFired, got.fired)
			assert.Equal(t, tt.wantInverse, got.inverse)
			assert.Equal(t, tt.wantMultiplier, got.multiplier)
			assert.Equal(t, tt.wantReasons, got.reasons)
		})
	}
}

func TestIsSingleStock(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "Direxion Daily TSLA Bull 2X Shares", want: true},
		{input: "Direxion Daily AAPL Bear 1X Shares", want: true},
		{input: "T-Rex 2X Long NVDA Daily Target ETF", want: true},
		{input: "GraniteShares 2x Long COIN Daily ETF", want: true},
		{input: "Leverage Shares 3x (MSFT) Bull ETP", want: true},
		{input: "ProShares UltraPro Short QQQ", want: false},
		{input: "Direxion Daily S&P 500 Bull 3X Shares", want: false},
		{input: "ProShares Short MSCI EAFE", want: false},
		{input: "Direxion Daily Gold Miners Bull 2X Shares", want: false},
	}

	c := Default()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, c.isSingleStock(Normalize(tt.input).Original))
		})
	}
}

func TestFindExposure(t *testing.T) {
	tests := []struct {
		name            string
		folded          string
		wantCommodities []string
		wantCryptos     []string
	}{
		{name: "goldman alone", folded: "goldman sachs activebeta u.s. large cap equity etf"},
		{name: "goldman with gold", folded: "goldman sachs physical gold etf", wantCommodities: []string{"gold"}},
		{name: "oil-dri company", folded: "oil-dri corporation of america"},
		{name: "silver spike", folded: "silver spike investment corp"},
		{name: "crude oil", folded: "united states oil fund", wantCommodities: []string{"oil"}},
		{name: "repeated term once", folded: "gold and more gold trust", wantCommodities: []string{"gold"}},
		{name: "crypto", folded: "grayscale bitcoin trust (btc)", wantCryptos: []string{"bitcoin", "btc"}},
		{
			name:            "commodity and crypto together",
			folded:          "gold and bitcoin futures strategy etf",
			wantCommodities: []string{"gold"},
			wantCryptos:     []string{"bitcoin"},
		},
	}

	c := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.findExposure(tt.folded)
			assert.Equal(t, tt.wantCommodities, got.commodities)
			assert.Equal(t, tt.wantCryptos, got.cryptos)
			assert.Equal(t, len(tt.wantCommodities)+len(tt.wantCryptos) > 0, got.any())
		})
	}
}

func TestLeverageSignals(t *testing.T) {
	c := Default()

	assert.True(t, c.isLeverage("direxion daily tsla bull 2x shares"))
	assert.True(t, c.isLeverage("direxion daily tsla bear 1x shares"))
	assert.True(t, c.isLeverage("some 1.5x fund"))
	assert.False(t, c.isLeverage("direxion daily tsla shares"))
	assert.False(t, c.isLeverage("bull market fund"))

	assert.True(t, c.isInverse("tradr 2x short tsla daily etf"))
	assert.False(t, c.isInverse("pimco enhanced short maturity active etf"))
}

func TestImpliedMultiplierReason(t *testing.T) {
	assert.Equal(t, "implied_multiplier_2x", ImpliedMultiplierReason(2))
	assert.Equal(t, "implied_multiplier_3x", ImpliedMultiplierReason(3))
	assert.Equal(t, "implied_multiplier_unknown", ImpliedMultiplierReason(0))
}
