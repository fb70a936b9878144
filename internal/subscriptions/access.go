package subscriptions

import (
	"time"

	"github.com/docsai-app/docsai-backend/pkg/db/models"
	"github.com/docsai-app/docsai-backend/pkg/enums"
)

// EffectiveTier resolves the tier a subscription actually grants at the given
// time. A missing, cancelled, or lapsed subscription grants the free tier.
func EffectiveTier(sub *models.Subscription, now time.Time) enums.PricingTier {
	if sub == nil || !sub.IsActive {
		return enums.PricingTierFree
	}
	if sub.ExpiresAt != nil && !sub.ExpiresAt.After(now) {
		return enums.PricingTierFree
	}
	if !sub.Tier.IsValid() {
		return enums.PricingTierFree
	}
	return sub.Tier
}

// HasAccess reports whether the subscription satisfies the required tier.
func HasAccess(sub *models.Subscription, required enums.PricingTier, now time.Time) bool {
	return EffectiveTier(sub, now).Covers(required)
}
