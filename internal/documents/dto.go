package documents

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/docsai-app/docsai-backend/internal/forms"
	"github.com/docsai-app/docsai-backend/pkg/db/models"
	"github.com/docsai-app/docsai-backend/pkg/enums"
)

// DocumentDTO is the transport shape for one document or template.
type DocumentDTO struct {
	ID           uuid.UUID          `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	DocumentType enums.DocumentType `json:"document_type"`
	Content      json.RawMessage    `json:"content"`
	Regions      []string           `json:"regions"`
	IsPremium    bool               `json:"is_premium"`
	PricingTier  enums.PricingTier  `json:"pricing_tier"`
	OwnerID      uuid.UUID          `json:"owner_id"`
	IsTemplate   bool               `json:"is_template"`
	ReadOnly     bool               `json:"read_only"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// CreateDocumentInput carries the fields needed to create a document.
type CreateDocumentInput struct {
	Title        string             `json:"title" validate:"required"`
	Description  string             `json:"description"`
	DocumentType enums.DocumentType `json:"document_type" validate:"required"`
	Content      json.RawMessage    `json:"content"`
	Regions      []string           `json:"regions"`
	IsPremium    bool               `json:"is_premium"`
}

// SaveDocumentInput carries a save of the edited form state. Nil pointer
// fields leave the stored value unchanged.
type SaveDocumentInput struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Content     json.RawMessage `json:"content"`
}

// FormView is the resolved form surface for one document: the section
// layout with current values, invoice totals when relevant, and the
// caller's mutation rights.
type FormView struct {
	DocumentID   uuid.UUID             `json:"document_id"`
	DocumentType enums.DocumentType    `json:"document_type"`
	Sections     []forms.SectionLayout `json:"sections"`
	Totals       *forms.InvoiceTotals  `json:"totals,omitempty"`
	ReadOnly     bool                  `json:"read_only"`
}

func fromModel(doc *models.Document, templateOwnerID uuid.UUID, readOnly bool) *DocumentDTO {
	if doc == nil {
		return nil
	}
	return &DocumentDTO{
		ID:           doc.ID,
		Title:        doc.Title,
		Description:  doc.Description,
		DocumentType: doc.DocumentType,
		Content:      doc.Content,
		Regions:      doc.Regions,
		IsPremium:    doc.IsPremium,
		PricingTier:  doc.PricingTier,
		OwnerID:      doc.OwnerID,
		IsTemplate:   doc.OwnerID == templateOwnerID,
		ReadOnly:     readOnly,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
