package classifier

import "github.com/Veraticus/etpscan/internal/model"

// evaluator returns ok=true when it has an opinion about the subject.
type evaluator struct {
	eval func(*subject) (model.Verdict, bool)
	name string
}

func (c *Classifier) buildChain() []evaluator {
	return []evaluator{
		{name: "plausibility_gate", eval: c.evalGate},
		{name: "brand_inference", eval: c.evalBrand},
		{name: "leverage_inverse", eval: c.evalLeverage},
		{name: "commodity_futures", eval: c.evalFutures},
		{name: "physical_trust", eval: c.evalPhysicalTrust},
		{name: "physical_fund", eval: c.evalPhysicalFund},
	}
}

// EvaluatorNames returns the chain in priority order.
func (c *Classifier) EvaluatorNames() []string {
	names := make([]string, 0, len(c.chain))
	for _, e := range c.chain {
		names = append(names, e.name)
	}
	return names
}

func (c *Classifier) evalGate(s *subject) (model.Verdict, bool) {
	if c.plausible(s) {
		return model.Verdict{}, false
	}
	return model.NoMatch(), true
}

func (c *Classifier) evalBrand(s *subject) (model.Verdict, bool) {
	b := c.inferBrand(s.name.Folded)
	if !b.fired {
		return model.Verdict{}, false
	}

	typ, reasons := c.resolveType(s, model.InstrumentFund)
	reasons = append(reasons, b.reasons...)
	single := c.isSingleStock(s.name.Original)
	if single {
		reasons = append(reasons, ReasonSingleStock)
	}
	reasons = append(reasons, ImpliedMultiplierReason(b.multiplier))

	return model.NewMatch(model.LeveragedCategory(single, b.inverse), typ, reasons), true
}

func (c *Classifier) evalLeverage(s *subject) (model.Verdict, bool) {
	leverage := c.isLeverage(s.name.Folded)
	inverse := c.isInverse(s.name.Folded)
	if !leverage && !inverse {
		return model.Verdict{}, false
	}

	typ, reasons := c.resolveType(s, model.InstrumentFund)
	if leverage {
		reasons = append(reasons, ReasonLeverage)
	}
	if inverse {
		reasons = append(reasons, ReasonInverse)
	}
	single := c.isSingleStock(s.name.Original)
	if single {
		reasons = append(reasons, ReasonSingleStock)
	}

	return model.NewMatch(model.LeveragedCategory(single, inverse), typ, reasons), true
}

func (c *Classifier) evalFutures(s *subject) (model.Verdict, bool) {
	exp := c.exposureOf(s)
	if !exp.any() || !c.hasFuturesCue(s.name.Folded) {
		return model.Verdict{}, false
	}

	typ, reasons := c.resolveType(s, model.InstrumentFund)
	reasons = append(reasons, ReasonFutures)

	category := model.CategoryCommodityFutures
	if exp.isCrypto() {
		category = model.CategoryCryptoFutures
	}
	return model.NewMatch(category, typ, reasons), true
}

func (c *Classifier) evalPhysicalTrust(s *subject) (model.Verdict, bool) {
	exp := c.exposureOf(s)
	if !s.hasTrust || !exp.any() {
		return model.Verdict{}, false
	}
	return c.physicalVerdict(s, exp, model.InstrumentTrust), true
}

// evalPhysicalFund covers physically backed products that are not organized as trusts.
func (c *Classifier) evalPhysicalFund(s *subject) (model.Verdict, bool) {
	exp := c.exposureOf(s)
	if !exp.any() || !c.t.physical.Match(s.name.Folded) {
		return model.Verdict{}, false
	}
	return c.physicalVerdict(s, exp, model.InstrumentFund), true
}

func (c *Classifier) physicalVerdict(s *subject, exp exposure, fallback model.InstrumentType) model.Verdict {
	typ, reasons := c.resolveType(s, fallback)
	if c.t.physical.Match(s.name.Folded) {
		reasons = append(reasons, ReasonPhysical)
	}

	category := model.CategoryCommodityPhysicalTrust
	if exp.isCrypto() {
		category = model.CategoryCryptoTrust
	}
	return model.NewMatch(category, typ, reasons)
}

// resolveType returns the classified type, or fallback when the name alone says nothing more specific.
// The returned reasons slice is fresh.
func (c *Classifier) resolveType(s *subject, fallback model.InstrumentType) (model.InstrumentType, []string) {
	typ, reasons := c.instrumentType(s)
	if typ == model.InstrumentUnknown {
		typ = fallback
	}
	return typ, append([]string(nil), reasons...)
}
