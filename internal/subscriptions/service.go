package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/docsai-app/docsai-backend/pkg/db/models"
	"github.com/docsai-app/docsai-backend/pkg/enums"
	pkgerrors "github.com/docsai-app/docsai-backend/pkg/errors"
)

type subscriptionRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
	Create(ctx context.Context, sub *models.Subscription) error
	Save(ctx context.Context, sub *models.Subscription) error
	Deactivate(ctx context.Context, userID uuid.UUID) error
}

// Service defines the subscription lifecycle surface.
type Service interface {
	Fetch(ctx context.Context, userID uuid.UUID) (*SubscriptionDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateSubscriptionInput) (*SubscriptionDTO, error)
	Cancel(ctx context.Context, userID uuid.UUID) error
}

// ServiceParams groups dependencies for the subscription service.
type ServiceParams struct {
	Repo subscriptionRepository
}

type service struct {
	repo subscriptionRepository
	now  func() time.Time
}

// NewService builds a subscription service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("subscription repo required")
	}
	return &service{
		repo: params.Repo,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// Fetch returns the user's subscription. Users without a subscription row are
// on the free tier.
func (s *service) Fetch(ctx context.Context, userID uuid.UUID) (*SubscriptionDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	sub, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultFreeDTO(userID, s.now()), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup subscription")
	}

	dto := FromModel(sub)
	dto.Tier = EffectiveTier(sub, s.now())
	return dto, nil
}

// Create starts or changes the user's subscription, replacing any prior plan.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateSubscriptionInput) (*SubscriptionDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !input.Tier.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing tier")
	}
	if input.Tier != enums.PricingTierFree && !input.Duration.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid billing duration")
	}

	now := s.now()
	expiresAt := expiryFor(input.Tier, input.Duration, now)

	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup subscription")
	}

	if existing != nil {
		existing.Tier = input.Tier
		existing.StartsAt = now
		existing.ExpiresAt = expiresAt
		existing.IsActive = true
		if err := s.repo.Save(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update subscription")
		}
		return FromModel(existing), nil
	}

	sub := &models.Subscription{
		UserID:    userID,
		Tier:      input.Tier,
		StartsAt:  now,
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create subscription")
	}
	return FromModel(sub), nil
}

// Cancel deactivates the user's subscription, dropping them to the free tier.
func (s *service) Cancel(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.repo.Deactivate(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no subscription to cancel")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancel subscription")
	}
	return nil
}

// expiryFor computes the plan end date. The free tier never expires.
func expiryFor(tier enums.PricingTier, duration enums.BillingDuration, now time.Time) *time.Time {
	if tier == enums.PricingTierFree {
		return nil
	}
	var expires time.Time
	switch duration {
	case enums.BillingDurationYearly:
		expires = now.AddDate(1, 0, 0)
	default:
		expires = now.AddDate(0, 1, 0)
	}
	return &expires
}

func defaultFreeDTO(userID uuid.UUID, now time.Time) *SubscriptionDTO {
	return &SubscriptionDTO{
		UserID:   userID,
		Tier:     enums.PricingTierFree,
		StartsAt: now,
		IsActive: true,
	}
}
