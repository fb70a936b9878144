package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/docsai-app/docsai-backend/pkg/enums"
)

// Subscription persists one user's paid tier. Cancelling flips IsActive
// instead of deleting the record.
type Subscription struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Tier      enums.PricingTier `gorm:"column:tier;type:text;not null;default:'free'"`
	StartsAt  time.Time         `gorm:"column:starts_at;not null"`
	ExpiresAt *time.Time        `gorm:"column:expires_at"`
	IsActive  bool              `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
