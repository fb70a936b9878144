package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/docsai-app/docsai-backend/pkg/enums"
	"github.com/docsai-app/docsai-backend/pkg/types"
)

// Document persists one template or user-owned document. Records owned by
// the sentinel template owner are read-only public templates; saving one
// creates a fresh record owned by the saving user.
type Document struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title        string             `gorm:"column:title;not null"`
	Description  string             `gorm:"column:description;not null;default:''"`
	DocumentType enums.DocumentType `gorm:"column:document_type;type:text;not null;index"`
	Content      json.RawMessage    `gorm:"column:content;type:jsonb"`
	Regions      types.StringArray  `gorm:"column:regions;type:text[]"`
	IsPremium    bool               `gorm:"column:is_premium;not null;default:false"`
	PricingTier  enums.PricingTier  `gorm:"column:pricing_tier;type:text;not null;default:'free'"`
	OwnerID      uuid.UUID          `gorm:"column:owner_id;type:uuid;not null;index"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
