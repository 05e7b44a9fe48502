// Package classifier turns exchange traded product names into category verdicts.
//
// A Classifier runs a fixed chain of evaluators over a normalized name. Each evaluator either
// has no opinion or returns a complete verdict; the first opinion wins. The classifier holds no
// mutable state, so one instance serves concurrent callers.
package classifier

import (
	"github.com/Veraticus/etpscan/internal/model"
	"github.com/Veraticus/etpscan/internal/rules"
)

// tables caches the library lookups the evaluators need.
type tables struct {
	leverageNumeric    rules.Table
	inverse            rules.Table
	bearish            rules.Table
	bullBear           rules.Table
	leverageBrand      rules.Table
	durationExclusion  rules.Table
	commodity          rules.Table
	crypto             rules.Table
	commodityException rules.Table
	futures            rules.Table
	futuresFamily      rules.Table
	physical           rules.Table
	trust              rules.Table
	note               rules.Table
	fundWord           rules.Table
	brandUltraPro      rules.Table
	brandUltra         rules.Table
	brandUltraShort    rules.Table
	brandUltraVeto     rules.Table
	brandInverseVocab  rules.Table
	singleStock        rules.Table
	tickerException    rules.Table
}

// Classifier assigns categories to instrument names.
type Classifier struct {
	chain []evaluator
	t     tables
}

// New creates a classifier over lib. A nil lib selects rules.Default().
func New(lib *rules.Library) *Classifier {
	if lib == nil {
		lib = rules.Default()
	}
	c := &Classifier{
		t: tables{
			leverageNumeric:    lib.Table(rules.TableLeverageNumeric),
			inverse:            lib.Table(rules.TableInverse),
			bearish:            lib.Table(rules.TableBearish),
			bullBear:           lib.Table(rules.TableBullBear),
			leverageBrand:      lib.Table(rules.TableLeverageBrand),
			durationExclusion:  lib.Table(rules.TableDurationExclusion),
			commodity:          lib.Table(rules.TableCommodity),
			crypto:             lib.Table(rules.TableCrypto),
			commodityException: lib.Table(rules.TableCommodityException),
			futures:            lib.Table(rules.TableFutures),
			futuresFamily:      lib.Table(rules.TableFuturesFamily),
			physical:           lib.Table(rules.TablePhysical),
			trust:              lib.Table(rules.TableTrust),
			note:               lib.Table(rules.TableNote),
			fundWord:           lib.Table(rules.TableFundWord),
			brandUltraPro:      lib.Table(rules.TableBrandUltraPro),
			brandUltra:         lib.Table(rules.TableBrandUltra),
			brandUltraShort:    lib.Table(rules.TableBrandUltraShort),
			brandUltraVeto:     lib.Table(rules.TableBrandUltraVeto),
			brandInverseVocab:  lib.Table(rules.TableBrandInverseVocab),
			singleStock:        lib.Table(rules.TableSingleStock),
			tickerException:    lib.Table(rules.TableTickerException),
		},
	}
	c.chain = c.buildChain()
	return c
}

var std = New(nil)

// Default returns the classifier built on the default rule library.
func Default() *Classifier {
	return std
}

// Classify classifies name with the default classifier.
func Classify(name string, flags model.Flags) model.Verdict {
	return std.Classify(name, flags)
}

// Classify runs the evaluator chain over name and returns the first verdict it produces.
func (c *Classifier) Classify(name string, flags model.Flags) model.Verdict {
	s := c.newSubject(name, flags)
	for _, e := range c.chain {
		if v, ok := e.eval(s); ok {
			return v
		}
	}
	return model.NoMatch()
}

// subject carries one name through the chain. Facts are computed on first use.
type subject struct {
	exp      *exposure
	typ      model.InstrumentType
	name     Name
	reasons  []string
	flags    model.Flags
	hasTrust bool
	hasNote  bool
	hasFund  bool
	typed    bool
}

func (c *Classifier) newSubject(raw string, flags model.Flags) *subject {
	n := Normalize(raw)
	return &subject{
		name:     n,
		flags:    flags,
		hasTrust: c.t.trust.Match(n.Folded),
		hasNote:  c.t.note.Match(n.Folded),
		hasFund:  c.t.fundWord.Match(n.Folded),
	}
}

func (c *Classifier) exposureOf(s *subject) exposure {
	if s.exp == nil {
		e := c.findExposure(s.name.Folded)
		s.exp = &e
	}
	return *s.exp
}

// plausible is the cheap pre-filter: only fund-flagged names or names with wrapper vocabulary go further.
func (c *Classifier) plausible(s *subject) bool {
	if s.name.IsEmpty() {
		return false
	}
	return s.flags.IsFundFlagged || s.hasTrust || s.hasNote || s.hasFund
}

// instrumentType resolves the wrapper type. Note vocabulary always beats trust vocabulary.
func (c *Classifier) instrumentType(s *subject) (model.InstrumentType, []string) {
	if s.typed {
		return s.typ, s.reasons
	}
	var reasons []string
	if s.flags.IsFundFlagged {
		reasons = append(reasons, ReasonFundFlag)
	}

	typ := model.InstrumentUnknown
	switch {
	case s.hasNote:
		typ = model.InstrumentNote
		reasons = append(reasons, ReasonTypeNote)
	case s.hasTrust && c.exposureOf(s).any():
		typ = model.InstrumentTrust
		reasons = append(reasons, ReasonTypeTrust)
	case s.flags.IsFundFlagged || s.hasFund:
		typ = model.InstrumentFund
		reasons = append(reasons, ReasonTypeFund)
	}

	s.typ, s.reasons, s.typed = typ, reasons, true
	return typ, reasons
}

// InstrumentType returns the wrapper type of name without assigning a category.
func (c *Classifier) InstrumentType(name string, flags model.Flags) model.InstrumentType {
	typ, _ := c.instrumentType(c.newSubject(name, flags))
	return typ
}
