package enums

import "fmt"

// PricingTier gates access to premium templates and document quotas.
type PricingTier string

const (
	PricingTierFree    PricingTier = "free"
	PricingTierBasic   PricingTier = "basic"
	PricingTierPremium PricingTier = "premium"
)

var validPricingTiers = []PricingTier{
	PricingTierFree,
	PricingTierBasic,
	PricingTierPremium,
}

var pricingTierOrder = map[PricingTier]int{
	PricingTierFree:    0,
	PricingTierBasic:   1,
	PricingTierPremium: 2,
}

// String implements fmt.Stringer.
func (p PricingTier) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p PricingTier) IsValid() bool {
	for _, candidate := range validPricingTiers {
		if candidate == p {
			return true
		}
	}
	return false
}

// Order returns the tier's rank in the free < basic < premium total order.
// Unknown tiers rank lowest.
func (p PricingTier) Order() int {
	if rank, ok := pricingTierOrder[p]; ok {
		return rank
	}
	return 0
}

// Covers reports whether the tier grants access to the required tier.
func (p PricingTier) Covers(required PricingTier) bool {
	return p.Order() >= required.Order()
}

// ParsePricingTier converts raw input into a PricingTier.
func ParsePricingTier(value string) (PricingTier, error) {
	for _, candidate := range validPricingTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing tier %q", value)
}
