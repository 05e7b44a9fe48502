package rules

// DefaultDefinitions returns the rule set used to classify exchange traded product names.
// Expressions are case-insensitive unless CaseSensitive is set.
func DefaultDefinitions() []Definition {
	var defs []Definition
	add := func(table string, rows ...[2]string) {
		for _, r := range rows {
			defs = append(defs, Definition{Table: table, Tag: r[0], Expr: r[1]})
		}
	}
	addCased := func(table string, rows ...[2]string) {
		for _, r := range rows {
			defs = append(defs, Definition{Table: table, Tag: r[0], Expr: r[1], CaseSensitive: true})
		}
	}

	// Leverage and direction
	add(TableLeverageNumeric,
		[2]string{"multiplier", `\b(?:1\.5|2|3|4)x\b`},
	)
	add(TableInverse,
		[2]string{"negative_multiplier", `(?:^|[^\w.])-[12]x\b`},
		[2]string{"inverse", `\binverse\b`},
		[2]string{"short", `\bshort\b`},
		[2]string{"bear", `\bbear\b`},
	)
	add(TableBearish,
		[2]string{"negative_multiplier", `(?:^|[^\w.])-[12]x\b`},
		[2]string{"bear", `\bbear\b`},
	)
	add(TableBullBear,
		[2]string{"bull_bear", `\b(?:bull|bear)\b`},
	)
	add(TableLeverageBrand,
		[2]string{"direxion_daily", `\bdirexion\s+daily\b`},
		[2]string{"leverage_shares", `\bleverage\s+shares\b`},
		[2]string{"t_rex", `\bt-?\s?rex\b`},
		[2]string{"graniteshares", `\bgraniteshares\b`},
		[2]string{"defiance_daily", `\bdefiance\s+daily\b`},
		[2]string{"ultrapro", `\bultrapro\b`},
		[2]string{"proshares_ultra", `\bproshares\s+ultra\b`},
	)

	// Fixed income and cash phrases that make "short" a maturity word instead of a direction.
	add(TableDurationExclusion,
		[2]string{"duration_cash", `\b(?:ultra[\s-]?)?short[\s-]?(?:term|duration|maturit(?:y|ies)|treasury|t-?bills?|muni|municipal|government|gov't|gov|corp|corporate|bond|fixed\s*income|income|cash|money\s*market)\b`},
	)

	// Brand families
	add(TableBrandUltraPro,
		[2]string{"ultrapro", `\bultrapro\b`},
	)
	add(TableBrandUltra,
		[2]string{"proshares_ultra", `\bproshares\s+ultra\b`},
	)
	add(TableBrandUltraShort,
		[2]string{"proshares_ultrashort", `\bproshares\s+ultra[\s-]?short(?:\s|$)`},
	)
	// Any "Short" right after "ProShares Ultra" rules out the long Ultra family, including "Short-Term".
	add(TableBrandUltraVeto,
		[2]string{"ultra_followed_by_short", `\bproshares\s+ultra[\s-]?short`},
	)
	add(TableBrandInverseVocab,
		[2]string{"inverse", `\binverse\b`},
		[2]string{"ultra_short", `\bultra[\s-]?short\b`},
		[2]string{"short", `\bshort\b`},
		[2]string{"bear", `\bbear\b`},
	)

	// Commodity and crypto vocabulary
	add(TableCommodity,
		[2]string{"gold", `\bgold\b`},
		[2]string{"silver", `\bsilver\b`},
		[2]string{"platinum", `\bplatinum\b`},
		[2]string{"palladium", `\bpalladium\b`},
		[2]string{"precious_metals", `\bprecious\s+metals?\b`},
		[2]string{"crude_oil", `\bcrude\b`},
		[2]string{"oil", `\boil\b`},
		[2]string{"brent", `\bbrent\b`},
		[2]string{"wti", `\bwti\b`},
		[2]string{"natural_gas", `\bnat(?:ural)?\s+gas\b`},
		[2]string{"gasoline", `\bgasoline\b`},
		[2]string{"copper", `\bcopper\b`},
		[2]string{"aluminum", `\balumin(?:um|ium)\b`},
		[2]string{"zinc", `\bzinc\b`},
		[2]string{"nickel", `\bnickel\b`},
		[2]string{"tin", `\btin\b`},
		[2]string{"lithium", `\blithium\b`},
		[2]string{"uranium", `\buranium\b`},
		[2]string{"corn", `\bcorn\b`},
		[2]string{"soybeans", `\bsoybeans?\b`},
		[2]string{"wheat", `\bwheat\b`},
		[2]string{"coffee", `\bcoffee\b`},
		[2]string{"sugar", `\bsugar\b`},
		[2]string{"cocoa", `\bcocoa\b`},
		[2]string{"cotton", `\bcotton\b`},
		[2]string{"cattle", `\b(?:live|feeder)\s+cattle\b`},
		[2]string{"lean_hogs", `\blean\s+hogs\b`},
		[2]string{"vix", `\bvix\b`},
		[2]string{"volatility", `\bvolatility\b`},
	)
	add(TableCrypto,
		[2]string{"bitcoin", `\bbitcoin\b`},
		[2]string{"btc", `\bbtc\b`},
		[2]string{"ether", `\bether\b`},
		[2]string{"ethereum", `\bethereum\b`},
		[2]string{"solana", `\bsolana\b`},
		[2]string{"xrp", `\bxrp\b`},
	)
	// Issuer and company names that contain a whole commodity word.
	add(TableCommodityException,
		[2]string{"goldman", `\bgoldman(?:\s+sachs)?\b`},
		[2]string{"oil_dri", `\boil-dri\b`},
		[2]string{"silver_spike", `\bsilver\s+spike\b`},
	)

	// Futures and physical backing
	add(TableFutures,
		[2]string{"futures", `\bfutures?\b`},
		[2]string{"front_month", `\bfront[\s-]?month\b`},
		[2]string{"strategy", `\bstrategy\b`},
	)
	add(TableFuturesFamily,
		[2]string{"us_commodity_funds", `\bunited\s+states\s+(?:12\s+month\s+)?(?:oil|brent\s+oil|natural\s+gas|gasoline|heating\s+oil|copper|commodity\s+index)\b.*\bfunds?\b`},
	)
	add(TablePhysical,
		[2]string{"physical", `\bphysical(?:ly)?\b`},
		[2]string{"bullion", `\bbullion\b`},
		[2]string{"bars", `\bbars?\b`},
	)

	// Wrapper vocabulary
	add(TableTrust,
		[2]string{"trust", `\btrust\b`},
	)
	add(TableNote,
		[2]string{"etn", `\betns?\b`},
		[2]string{"exchange_traded_note", `\bexchange[\s-]?traded\s+notes?\b`},
		[2]string{"notes_due", `\bnotes?\s+due\b`},
		[2]string{"ipath", `\bipath\b`},
		[2]string{"etracs", `\betracs\b`},
	)
	add(TableFundWord,
		[2]string{"etf", `\betfs?\b`},
		[2]string{"exchange_traded_fund", `\bexchange[\s-]?traded\s+funds?\b`},
		[2]string{"fund", `\bfund\b`},
	)

	// Single-stock shapes. Tickers are uppercase in the listing, so these run on the case-preserving
	// name; only the direction words are case-insensitive.
	addCased(TableSingleStock,
		[2]string{"daily_ticker_direction", `\b(?i:daily)\s+([A-Z]{1,5})\s+(?i:bull|bear)\b`},
		[2]string{"side_ticker", `\b(?i:long|short)\s+([A-Z]{1,5})(?:\s|\)|$)`},
		[2]string{"ticker_direction_multiplier", `\b([A-Z]{1,5})\s+(?i:bull|bear)\s+-?(?i:1\.5|[1-4])(?i:x)\b`},
		[2]string{"ticker_paren_direction", `\b([A-Z]{1,5})\)\s*(?i:bull|bear)\b`},
		[2]string{"ticker_direction_daily", `\b([A-Z]{1,5})\s+(?i:bull|bear)\s+(?i:daily)\b`},
	)
	// Uppercase tokens that name an index, a wrapper or a currency rather than a single company.
	addCased(TableTickerException,
		[2]string{"index_acronym", `^(?:A|I|X|S|P|SP|SPX|SPY|QQQ|NDX|DIA|DJ|DJIA|DOW|IWM|VIX|VXX|US|USA|USD|EUR|JPY|ETF|ETFS|ETN|ETNS|MSCI|FTSE|EAFE|CSI|KBW|GSCI|CBOE|NYSE|REIT|REITS|EM|ESG|MLP|HY|IG|TIPS|MBS|BDC|AI|BTC|ETH|XRP|SOL|DB|LLC|INC|II|III|IV|TR)$`},
	)

	return defs
}
