// Package location maps a declared headquarters location to a static
// regulatory-and-climate risk tier. Pure table lookup, never blocks.
package location

import (
	"strings"

	"analyzer/internal/domain"
	"analyzer/internal/taxonomy"
)

// Lookup resolves free-text locations against the jurisdiction table.
type Lookup struct {
	tiers map[string]domain.RiskTier
}

func NewLookup(tax *taxonomy.Taxonomy) *Lookup {
	tiers := make(map[string]domain.RiskTier)
	for _, name := range tax.Jurisdictions.Low {
		tiers[normalize(name)] = domain.TierLow
	}
	for _, name := range tax.Jurisdictions.Medium {
		tiers[normalize(name)] = domain.TierMedium
	}
	for _, name := range tax.Jurisdictions.High {
		tiers[normalize(name)] = domain.TierHigh
	}
	return &Lookup{tiers: tiers}
}

// Resolve maps a free-text location to a risk tier. Unresolved or empty
// input yields UNKNOWN with a note explaining why.
func (l *Lookup) Resolve(location string) domain.LocationSignals {
	key := normalize(location)
	if key == "" {
		return domain.LocationSignals{
			RiskTier:          domain.TierUnknown,
			JurisdictionNotes: []string{"no headquarters location provided"},
		}
	}

	if tier, ok := l.tiers[key]; ok {
		return domain.LocationSignals{
			RiskTier:          tier,
			JurisdictionNotes: []string{tierNote(tier, location)},
		}
	}

	// Free text often arrives as "City, Country"; try each comma part.
	for _, part := range strings.Split(key, ",") {
		if tier, ok := l.tiers[strings.TrimSpace(part)]; ok {
			return domain.LocationSignals{
				RiskTier:          tier,
				JurisdictionNotes: []string{tierNote(tier, location)},
			}
		}
	}

	return domain.LocationSignals{
		RiskTier:          domain.TierUnknown,
		JurisdictionNotes: []string{"unrecognized jurisdiction: " + strings.TrimSpace(location)},
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func tierNote(tier domain.RiskTier, location string) string {
	loc := strings.TrimSpace(location)
	switch tier {
	case domain.TierLow:
		return loc + ": strong climate regulation, low physical risk"
	case domain.TierMedium:
		return loc + ": moderate regulatory and climate exposure"
	case domain.TierHigh:
		return loc + ": elevated regulatory or physical climate risk"
	default:
		return loc + ": no jurisdiction data"
	}
}
