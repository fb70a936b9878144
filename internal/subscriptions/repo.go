package subscriptions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/docsai-app/docsai-backend/internal/repo"
	"github.com/docsai-app/docsai-backend/pkg/db/models"
)

// Repository exposes subscription persistence operations.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a subscriptions repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// FindByUserID retrieves the subscription row for the user, if any.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.base.DB(ctx).Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create inserts a new subscription row.
func (r *Repository) Create(ctx context.Context, sub *models.Subscription) error {
	return r.base.DB(ctx).Create(sub).Error
}

// Save persists the full subscription row.
func (r *Repository) Save(ctx context.Context, sub *models.Subscription) error {
	return r.base.DB(ctx).Save(sub).Error
}

// Deactivate clears the active flag for the user's subscription.
func (r *Repository) Deactivate(ctx context.Context, userID uuid.UUID) error {
	result := r.base.DB(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
