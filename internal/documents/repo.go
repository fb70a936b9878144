package documents

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/docsai-app/docsai-backend/internal/repo"
	"github.com/docsai-app/docsai-backend/pkg/db/models"
)

// Repository exposes document persistence operations.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a documents repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// FindByID loads one document by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	if err := r.base.DB(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create inserts a new document row.
func (r *Repository) Create(ctx context.Context, doc *models.Document) error {
	return r.base.DB(ctx).Create(doc).Error
}

// Update persists the full document row.
func (r *Repository) Update(ctx context.Context, doc *models.Document) error {
	return r.base.DB(ctx).Save(doc).Error
}

// Delete removes the document row by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.base.DB(ctx).Delete(&models.Document{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOwner returns all documents owned by one user, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	err := r.base.DB(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// ListTemplates returns the public templates, optionally filtered to one
// jurisdiction region. The array membership test only exists in Postgres, so
// the SQLite dev mode filters rows after loading them.
func (r *Repository) ListTemplates(ctx context.Context, templateOwnerID uuid.UUID, region string) ([]models.Document, error) {
	query := r.base.DB(ctx).Where("owner_id = ?", templateOwnerID)
	inSQL := query.Dialector.Name() == "postgres"
	if region != "" && inSQL {
		query = query.Where("? = ANY(regions)", region)
	}

	var docs []models.Document
	if err := query.Order("title ASC").Find(&docs).Error; err != nil {
		return nil, err
	}
	if region != "" && !inSQL {
		filtered := docs[:0]
		for _, doc := range docs {
			if hasRegion(doc.Regions, region) {
				filtered = append(filtered, doc)
			}
		}
		docs = filtered
	}
	return docs, nil
}

func hasRegion(regions []string, region string) bool {
	for _, candidate := range regions {
		if candidate == region {
			return true
		}
	}
	return false
}

// CountByOwner counts the documents a user owns.
func (r *Repository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.base.DB(ctx).
		Model(&models.Document{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
