// Package rules holds the compiled text-matching rules used to classify exchange traded product names.
//
// Rules are grouped into named, ordered tables. A Library is built once from a list of
// Definitions and is read-only afterwards, so a single instance can be shared by any number
// of goroutines without locking.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Table names.
const (
	TableLeverageNumeric    = "leverage_numeric"
	TableInverse            = "inverse"
	TableBearish            = "bearish"
	TableBullBear           = "bull_bear"
	TableLeverageBrand      = "leverage_brand"
	TableDurationExclusion  = "duration_exclusion"
	TableCommodity          = "commodity"
	TableCrypto             = "crypto"
	TableCommodityException = "commodity_exception"
	TableFutures            = "futures"
	TableFuturesFamily      = "futures_family"
	TablePhysical           = "physical"
	TableTrust              = "trust"
	TableNote               = "note"
	TableFundWord           = "fund_word"
	TableBrandUltraPro      = "brand_ultrapro"
	TableBrandUltra         = "brand_ultra"
	TableBrandUltraShort    = "brand_ultrashort"
	TableBrandUltraVeto     = "brand_ultra_veto"
	TableBrandInverseVocab  = "brand_inverse_vocab"
	TableSingleStock        = "single_stock"
	TableTickerException    = "ticker_exception"
)

// RequiredTables lists every table the classifier looks up. NewLibrary rejects definitions missing any of them.
var RequiredTables = []string{
	TableLeverageNumeric, TableInverse, TableBearish, TableBullBear, TableLeverageBrand,
	TableDurationExclusion, TableCommodity, TableCrypto, TableCommodityException,
	TableFutures, TableFuturesFamily, TablePhysical, TableTrust, TableNote, TableFundWord,
	TableBrandUltraPro, TableBrandUltra, TableBrandUltraShort, TableBrandUltraVeto, TableBrandInverseVocab,
	TableSingleStock, TableTickerException,
}

// Library errors.
var (
	ErrEmptyExpression = errors.New("rule expression cannot be empty")
	ErrMissingTable    = errors.New("required rule table missing")
)

// Definition is the uncompiled form of a rule.
type Definition struct {
	Table string
	Tag   string
	Expr  string
	// CaseSensitive disables the implicit (?i) prefix. Ticker shapes need it.
	CaseSensitive bool
}

// Rule is a compiled pattern with the tag it reports on a hit.
type Rule struct {
	Pattern *regexp.Regexp
	Tag     string
}

// Hit is a single rule match inside a text.
type Hit struct {
	Tag   string
	Start int
	End   int
}

// Table is a named, ordered group of rules.
type Table struct {
	name  string
	rules []Rule
}

// Name returns the table name.
func (t Table) Name() string {
	return t.name
}

// Len returns the number of rules in the table.
func (t Table) Len() int {
	return len(t.rules)
}

// Rules returns a copy of the table's rules in definition order.
func (t Table) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Match reports whether any rule in the table matches text.
func (t Table) Match(text string) bool {
	for _, r := range t.rules {
		if r.Pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// First returns the first rule, in definition order, that matches text.
func (t Table) First(text string) (Rule, bool) {
	for _, r := range t.rules {
		if r.Pattern.MatchString(text) {
			return r, true
		}
	}
	return Rule{}, false
}

// Tags returns the tags of every matching rule in definition order.
func (t Table) Tags(text string) []string {
	var tags []string
	for _, r := range t.rules {
		if r.Pattern.MatchString(text) {
			tags = append(tags, r.Tag)
		}
	}
	return tags
}

// Hits returns every match of every rule, ordered by position.
func (t Table) Hits(text string) []Hit {
	var hits []Hit
	for _, r := range t.rules {
		for _, loc := range r.Pattern.FindAllStringIndex(text, -1) {
			hits = append(hits, Hit{Tag: r.Tag, Start: loc[0], End: loc[1]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Start < hits[j].Start
	})
	return hits
}

// Submatches returns the first capture group of every match of every rule.
func (t Table) Submatches(text string) []string {
	var groups []string
	for _, r := range t.rules {
		for _, m := range r.Pattern.FindAllStringSubmatch(text, -1) {
			if len(m) > 1 {
				groups = append(groups, m[1])
			}
		}
	}
	return groups
}

// Library is the immutable collection of rule tables.
type Library struct {
	tables map[string]Table
}

// NewLibrary compiles the definitions into a Library.
func NewLibrary(defs []Definition) (*Library, error) {
	tables := make(map[string]Table)

	for _, d := range defs {
		if strings.TrimSpace(d.Expr) == "" {
			return nil, fmt.Errorf("%w: %s/%s", ErrEmptyExpression, d.Table, d.Tag)
		}

		expr := d.Expr
		if !d.CaseSensitive && !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}

		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s/%s: %w", d.Table, d.Tag, err)
		}

		t := tables[d.Table]
		t.name = d.Table
		t.rules = append(t.rules, Rule{Pattern: re, Tag: d.Tag})
		tables[d.Table] = t
	}

	for _, name := range RequiredTables {
		if _, ok := tables[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingTable, name)
		}
	}

	return &Library{tables: tables}, nil
}

// MustNewLibrary is like NewLibrary but panics on error.
func MustNewLibrary(defs []Definition) *Library {
	lib, err := NewLibrary(defs)
	if err != nil {
		panic(fmt.Sprintf("rules: invalid library: %v", err))
	}
	return lib
}

// Table returns the named table. Unknown names yield an empty table that never matches.
func (l *Library) Table(name string) Table {
	return l.tables[name]
}

// Names returns the table names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.tables))
	for name := range l.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RuleCount returns the total number of compiled rules.
func (l *Library) RuleCount() int {
	n := 0
	for _, t := range l.tables {
		n += len(t.rules)
	}
	return n
}

var std = MustNewLibrary(DefaultDefinitions())

// Default returns the process-wide library built from DefaultDefinitions.
func Default() *Library {
	return std
}
