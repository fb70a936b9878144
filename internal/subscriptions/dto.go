package subscriptions

import (
	"time"

	"github.com/google/uuid"

	"github.com/docsai-app/docsai-backend/pkg/db/models"
	"github.com/docsai-app/docsai-backend/pkg/enums"
)

// SubscriptionDTO is the transport shape returned to API clients.
type SubscriptionDTO struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Tier      enums.PricingTier `json:"tier"`
	StartsAt  time.Time         `json:"starts_at"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
	IsActive  bool              `json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CreateSubscriptionInput captures the data required to start or change a subscription.
type CreateSubscriptionInput struct {
	Tier     enums.PricingTier     `json:"tier" validate:"required"`
	Duration enums.BillingDuration `json:"duration,omitempty"`
}

func FromModel(s *models.Subscription) *SubscriptionDTO {
	if s == nil {
		return nil
	}

	return &SubscriptionDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		Tier:      s.Tier,
		StartsAt:  s.StartsAt,
		ExpiresAt: s.ExpiresAt,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
