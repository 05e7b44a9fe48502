package classifier

import "github.com/Veraticus/etpscan/internal/rules"

// exposure lists the commodity and crypto terms found in a name.
type exposure struct {
	commodities []string
	cryptos     []string
}

func (e exposure) any() bool {
	return len(e.commodities) > 0 || len(e.cryptos) > 0
}

func (e exposure) isCrypto() bool {
	return len(e.cryptos) > 0
}

// findExposure collects vocabulary hits, dropping any that sit inside an issuer name such as "Goldman Sachs".
func (c *Classifier) findExposure(folded string) exposure {
	exceptions := c.t.commodityException.Hits(folded)
	return exposure{
		commodities: acceptedTags(c.t.commodity.Hits(folded), exceptions),
		cryptos:     acceptedTags(c.t.crypto.Hits(folded), exceptions),
	}
}

// acceptedTags returns the distinct tags of hits not covered by an exception span.
func acceptedTags(hits, exceptions []rules.Hit) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, h := range hits {
		if covered(h, exceptions) || seen[h.Tag] {
			continue
		}
		seen[h.Tag] = true
		tags = append(tags, h.Tag)
	}
	return tags
}

func covered(h rules.Hit, spans []rules.Hit) bool {
	for _, s := range spans {
		if h.Start >= s.Start && h.End <= s.End {
			return true
		}
	}
	return false
}

// hasFuturesCue reports futures vocabulary or a known futures-fund family name.
func (c *Classifier) hasFuturesCue(folded string) bool {
	return c.t.futures.Match(folded) || c.t.futuresFamily.Match(folded)
}
