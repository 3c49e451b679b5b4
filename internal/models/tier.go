package models

import "strings"

// Tier is a risk classification level for critical points and risks.
type Tier string

const (
	TierHigh   Tier = "High"
	TierMedium Tier = "Medium"
	TierLow    Tier = "Low"
)

// Tiers returns the tiers in descending severity order.
func Tiers() []Tier {
	return []Tier{TierHigh, TierMedium, TierLow}
}

// ParseTier classifies a declared tier value. Matching is case-insensitive on
// the three recognized names; anything else classifies as Low rather than
// failing, since the generation capability is not contract-enforced. The
// verbatim value stays on the record for audit.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return TierHigh
	case "medium":
		return TierMedium
	case "low":
		return TierLow
	default:
		return TierLow
	}
}

// GroupCriticalPoints buckets points by their declared risk level.
// Every point lands in exactly one bucket; unrecognized levels land in Low.
func GroupCriticalPoints(points []CriticalPoint) map[Tier][]CriticalPoint {
	groups := make(map[Tier][]CriticalPoint)
	for _, p := range points {
		tier := ParseTier(p.RiskLevel)
		groups[tier] = append(groups[tier], p)
	}
	return groups
}

// GroupRisks buckets risks by their declared severity.
func GroupRisks(risks []Risk) map[Tier][]Risk {
	groups := make(map[Tier][]Risk)
	for _, r := range risks {
		tier := ParseTier(r.Severity)
		groups[tier] = append(groups[tier], r)
	}
	return groups
}
