package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/docsai-app/docsai-backend/internal/forms"
	"github.com/docsai-app/docsai-backend/internal/pdf"
	"github.com/docsai-app/docsai-backend/internal/subscriptions"
	"github.com/docsai-app/docsai-backend/pkg/config"
	"github.com/docsai-app/docsai-backend/pkg/db/models"
	"github.com/docsai-app/docsai-backend/pkg/enums"
	pkgerrors "github.com/docsai-app/docsai-backend/pkg/errors"
	"github.com/docsai-app/docsai-backend/pkg/logger"
	"github.com/docsai-app/docsai-backend/pkg/metrics"
)

type documentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	Create(ctx context.Context, doc *models.Document) error
	Update(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Document, error)
	ListTemplates(ctx context.Context, templateOwnerID uuid.UUID, region string) ([]models.Document, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type subscriptionReader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
}

// PDFResult is a rendered download: the byte stream plus its filename.
type PDFResult struct {
	Data     []byte
	Filename string
}

// Service is the document lifecycle surface consumed by the controllers.
type Service interface {
	Get(ctx context.Context, id, callerID uuid.UUID) (*DocumentDTO, error)
	Create(ctx context.Context, ownerID uuid.UUID, input CreateDocumentInput) (*DocumentDTO, error)
	Save(ctx context.Context, id, callerID uuid.UUID, input SaveDocumentInput) (*DocumentDTO, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
	ListTemplates(ctx context.Context, callerID uuid.UUID, region string) ([]DocumentDTO, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]DocumentDTO, error)
	Form(ctx context.Context, id, callerID uuid.UUID) (*FormView, error)
	RenderPDF(ctx context.Context, id, callerID uuid.UUID) (*PDFResult, error)
}

// ServiceParams groups the dependencies for the document service.
type ServiceParams struct {
	Repo             documentRepository
	SubscriptionRepo subscriptionReader
	Metrics          *metrics.PDFRenderMetrics
	Logger           *logger.Logger
	Config           config.DocumentsConfig
}

type service struct {
	repo          documentRepository
	subs          subscriptionReader
	renderMetrics *metrics.PDFRenderMetrics
	logg          *logger.Logger
	templateOwner uuid.UUID
	freeTierMax   int
	now           func() time.Time

	mu            sync.Mutex
	savesInFlight map[uuid.UUID]struct{}
}

// NewService builds a document service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("document repo required")
	}
	if params.SubscriptionRepo == nil {
		return nil, fmt.Errorf("subscription repo required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	templateOwner, err := uuid.Parse(params.Config.TemplateOwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid template owner id %q: %w", params.Config.TemplateOwnerID, err)
	}
	freeTierMax := params.Config.FreeTierMaxDocuments
	if freeTierMax <= 0 {
		return nil, fmt.Errorf("free tier document limit must be positive")
	}

	return &service{
		repo:          params.Repo,
		subs:          params.SubscriptionRepo,
		renderMetrics: params.Metrics,
		logg:          params.Logger,
		templateOwner: templateOwner,
		freeTierMax:   freeTierMax,
		now:           func() time.Time { return time.Now().UTC() },
		savesInFlight: make(map[uuid.UUID]struct{}),
	}, nil
}

func (s *service) Get(ctx context.Context, id, callerID uuid.UUID) (*DocumentDTO, error) {
	doc, err := s.findVisible(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	tier, err := s.effectiveTier(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return fromModel(doc, s.templateOwner, s.readOnlyFor(doc, callerID, tier)), nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateDocumentInput) (*DocumentDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to create documents")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(string(input.DocumentType)) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document type is required")
	}
	content, err := forms.ParseContent(input.Content)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid content")
	}

	tier, err := s.effectiveTier(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkQuota(ctx, ownerID, tier); err != nil {
		return nil, err
	}

	encoded, err := content.MarshalJSON()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode content")
	}

	doc := &models.Document{
		Title:        title,
		Description:  input.Description,
		DocumentType: input.DocumentType,
		Content:      encoded,
		Regions:      input.Regions,
		IsPremium:    input.IsPremium,
		PricingTier:  enums.PricingTierFree,
		OwnerID:      ownerID,
	}
	if doc.IsPremium {
		doc.PricingTier = enums.PricingTierPremium
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create document")
	}

	ctx = s.logg.WithDocumentID(ctx, doc.ID.String())
	s.logg.Info(ctx, "document created")
	return fromModel(doc, s.templateOwner, false), nil
}

// Save persists the edited form state. Saving a template never mutates the
// template: it creates a fresh record owned by the caller. Saves to the same
// document are serialized by an in-flight guard so a double-submit cannot
// interleave.
func (s *service) Save(ctx context.Context, id, callerID uuid.UUID, input SaveDocumentInput) (*DocumentDTO, error) {
	if callerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to save documents")
	}
	if !s.acquireSave(id) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a save for this document is already in progress")
	}
	defer s.releaseSave(id)

	doc, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tier, err := s.effectiveTier(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !tier.Covers(doc.PricingTier) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "subscription tier does not allow editing this document")
	}

	if doc.OwnerID == s.templateOwner {
		return s.saveTemplateCopy(ctx, doc, callerID, tier, input)
	}
	if doc.OwnerID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
	}

	if err := applySave(doc, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update document")
	}

	ctx = s.logg.WithDocumentID(ctx, doc.ID.String())
	s.logg.Info(ctx, "document saved")
	return fromModel(doc, s.templateOwner, false), nil
}

// saveTemplateCopy is the copy-on-write path: the template row stays
// untouched and the caller receives their own free-tier copy.
func (s *service) saveTemplateCopy(ctx context.Context, template *models.Document, callerID uuid.UUID, tier enums.PricingTier, input SaveDocumentInput) (*DocumentDTO, error) {
	if err := s.checkQuota(ctx, callerID, tier); err != nil {
		return nil, err
	}

	copyDoc := &models.Document{
		Title:        template.Title,
		Description:  template.Description,
		DocumentType: template.DocumentType,
		Content:      template.Content,
		Regions:      append([]string(nil), template.Regions...),
		IsPremium:    false,
		PricingTier:  enums.PricingTierFree,
		OwnerID:      callerID,
	}
	if err := applySave(copyDoc, input); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, copyDoc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create document from template")
	}

	ctx = s.logg.WithDocumentID(ctx, copyDoc.ID.String())
	s.logg.Info(ctx, "template copied on save")
	return fromModel(copyDoc, s.templateOwner, false), nil
}

func applySave(doc *models.Document, input SaveDocumentInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		doc.Title = title
	}
	if input.Description != nil {
		doc.Description = *input.Description
	}
	if len(input.Content) > 0 {
		content, err := forms.ParseContent(input.Content)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid content")
		}
		encoded, err := content.MarshalJSON()
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode content")
		}
		doc.Content = encoded
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to delete documents")
	}

	doc, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}
	if doc.OwnerID == s.templateOwner {
		return pkgerrors.New(pkgerrors.CodeForbidden, "templates cannot be deleted")
	}
	if doc.OwnerID != callerID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete document")
	}

	ctx = s.logg.WithDocumentID(ctx, id.String())
	s.logg.Info(ctx, "document deleted")
	return nil
}

func (s *service) ListTemplates(ctx context.Context, callerID uuid.UUID, region string) ([]DocumentDTO, error) {
	docs, err := s.repo.ListTemplates(ctx, s.templateOwner, strings.TrimSpace(region))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list templates")
	}
	tier, err := s.effectiveTier(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(docs, callerID, tier), nil
}

func (s *service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]DocumentDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to list documents")
	}
	docs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list documents")
	}
	tier, err := s.effectiveTier(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(docs, ownerID, tier), nil
}

func (s *service) Form(ctx context.Context, id, callerID uuid.UUID) (*FormView, error) {
	doc, err := s.findVisible(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	content, err := forms.ParseContent(doc.Content)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse stored content")
	}

	tier, err := s.effectiveTier(ctx, callerID)
	if err != nil {
		return nil, err
	}

	view := &FormView{
		DocumentID:   doc.ID,
		DocumentType: doc.DocumentType,
		Sections:     forms.Layout(doc.DocumentType, content),
		ReadOnly:     s.readOnlyFor(doc, callerID, tier),
	}
	if doc.DocumentType == enums.DocumentTypeInvoice {
		totals := forms.ComputeInvoiceTotals(content)
		view.Totals = &totals
	}
	return view, nil
}

// RenderPDF produces the download for a document. Rendering always operates
// on the full persisted state and is never tier-gated; only visibility of
// the record is checked.
func (s *service) RenderPDF(ctx context.Context, id, callerID uuid.UUID) (*PDFResult, error) {
	doc, err := s.findVisible(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	content, err := forms.ParseContent(doc.Content)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse stored content")
	}

	start := s.now()
	var buf bytes.Buffer
	pageCount, err := pdf.Render(&buf, pdf.Document{
		Title:       doc.Title,
		Description: doc.Description,
		Sections:    forms.Layout(doc.DocumentType, content),
	})
	if err != nil {
		s.renderMetrics.IncFailure(doc.DocumentType.String())
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render pdf")
	}
	s.renderMetrics.ObserveRender(doc.DocumentType.String(), s.now().Sub(start), pageCount)
	s.renderMetrics.IncSuccess(doc.DocumentType.String())

	ctx = s.logg.WithDocumentID(ctx, doc.ID.String())
	s.logg.Info(ctx, "pdf rendered")

	return &PDFResult{
		Data:     buf.Bytes(),
		Filename: pdf.Filename(doc.Title),
	}, nil
}

// findVisible loads a document the caller may see: templates are public,
// private documents only resolve for their owner.
func (s *service) findVisible(ctx context.Context, id, callerID uuid.UUID) (*models.Document, error) {
	doc, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != s.templateOwner && doc.OwnerID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
	}
	return doc, nil
}

func (s *service) findByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load document")
	}
	return doc, nil
}

func (s *service) effectiveTier(ctx context.Context, userID uuid.UUID) (enums.PricingTier, error) {
	if userID == uuid.Nil {
		return enums.PricingTierFree, nil
	}
	sub, err := s.subs.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return enums.PricingTierFree, nil
		}
		return enums.PricingTierFree, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup subscription")
	}
	return subscriptions.EffectiveTier(sub, s.now()), nil
}

// checkQuota refuses document creation for free-tier users at their cap,
// before any row is written.
func (s *service) checkQuota(ctx context.Context, ownerID uuid.UUID, tier enums.PricingTier) error {
	if tier != enums.PricingTierFree {
		return nil
	}
	count, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count documents")
	}
	if count >= int64(s.freeTierMax) {
		return pkgerrors.New(pkgerrors.CodeQuota, "free tier document limit reached").
			WithDetails(map[string]any{"limit": s.freeTierMax})
	}
	return nil
}

func (s *service) readOnlyFor(doc *models.Document, callerID uuid.UUID, tier enums.PricingTier) bool {
	if callerID == uuid.Nil {
		return true
	}
	return !tier.Covers(doc.PricingTier)
}

func (s *service) toDTOs(docs []models.Document, callerID uuid.UUID, tier enums.PricingTier) []DocumentDTO {
	out := make([]DocumentDTO, 0, len(docs))
	for i := range docs {
		dto := fromModel(&docs[i], s.templateOwner, s.readOnlyFor(&docs[i], callerID, tier))
		out = append(out, *dto)
	}
	return out
}

func (s *service) acquireSave(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.savesInFlight[id]; busy {
		return false
	}
	s.savesInFlight[id] = struct{}{}
	return true
}

func (s *service) releaseSave(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.savesInFlight, id)
}
