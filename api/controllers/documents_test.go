package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/docsai-app/docsai-backend/api/middleware"
	"github.com/docsai-app/docsai-backend/internal/documents"
	pkgerrors "github.com/docsai-app/docsai-backend/pkg/errors"
	"github.com/docsai-app/docsai-backend/pkg/types"
)

type stubDocumentService struct {
	documents.Service

	getFn    func(ctx context.Context, id, callerID uuid.UUID) (*documents.DocumentDTO, error)
	createFn func(ctx context.Context, ownerID uuid.UUID, input documents.CreateDocumentInput) (*documents.DocumentDTO, error)
	saveFn   func(ctx context.Context, id, callerID uuid.UUID, input documents.SaveDocumentInput) (*documents.DocumentDTO, error)
	renderFn func(ctx context.Context, id, callerID uuid.UUID) (*documents.PDFResult, error)
	listFn   func(ctx context.Context, callerID uuid.UUID, region string) ([]documents.DocumentDTO, error)
}

func (s *stubDocumentService) Get(ctx context.Context, id, callerID uuid.UUID) (*documents.DocumentDTO, error) {
	return s.getFn(ctx, id, callerID)
}

func (s *stubDocumentService) Create(ctx context.Context, ownerID uuid.UUID, input documents.CreateDocumentInput) (*documents.DocumentDTO, error) {
	return s.createFn(ctx, ownerID, input)
}

func (s *stubDocumentService) Save(ctx context.Context, id, callerID uuid.UUID, input documents.SaveDocumentInput) (*documents.DocumentDTO, error) {
	return s.saveFn(ctx, id, callerID, input)
}

func (s *stubDocumentService) RenderPDF(ctx context.Context, id, callerID uuid.UUID) (*documents.PDFResult, error) {
	return s.renderFn(ctx, id, callerID)
}

func (s *stubDocumentService) ListTemplates(ctx context.Context, callerID uuid.UUID, region string) ([]documents.DocumentDTO, error) {
	return s.listFn(ctx, callerID, region)
}

func documentRouter(svc documents.Service, userID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	if userID != uuid.Nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middleware.WithUserID(req.Context(), userID)))
			})
		})
	}
	r.Get("/templates", TemplateList(svc, nil))
	r.Post("/documents", DocumentCreate(svc, nil))
	r.Get("/documents/{documentID}", DocumentGet(svc, nil))
	r.Put("/documents/{documentID}", DocumentSave(svc, nil))
	r.Get("/documents/{documentID}/pdf", DocumentPDF(svc, nil))
	return r
}

func TestDocumentGetParsesURLParam(t *testing.T) {
	docID := uuid.New()
	userID := uuid.New()
	svc := &stubDocumentService{
		getFn: func(_ context.Context, id, callerID uuid.UUID) (*documents.DocumentDTO, error) {
			if id != docID {
				t.Fatalf("service got id %s, want %s", id, docID)
			}
			if callerID != userID {
				t.Fatalf("service got caller %s, want %s", callerID, userID)
			}
			return &documents.DocumentDTO{ID: id, Title: "NDA"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/documents/"+docID.String(), nil)
	w := httptest.NewRecorder()
	documentRouter(svc, userID).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestDocumentGetRejectsMalformedID(t *testing.T) {
	svc := &stubDocumentService{
		getFn: func(context.Context, uuid.UUID, uuid.UUID) (*documents.DocumentDTO, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/documents/not-a-uuid", nil)
	w := httptest.NewRecorder()
	documentRouter(svc, uuid.New()).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDocumentCreateQuotaSurfacesAsForbidden(t *testing.T) {
	svc := &stubDocumentService{
		createFn: func(context.Context, uuid.UUID, documents.CreateDocumentInput) (*documents.DocumentDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeQuota, "free tier document limit reached").
				WithDetails(map[string]any{"limit": 3})
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader(`{"title":"Doc","document_type":"nda"}`))
	w := httptest.NewRecorder()
	documentRouter(svc, uuid.New()).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeQuota) {
		t.Fatalf("error code = %s", body.Error.Code)
	}
}

func TestDocumentSaveDecodesBody(t *testing.T) {
	docID := uuid.New()
	svc := &stubDocumentService{
		saveFn: func(_ context.Context, id, _ uuid.UUID, input documents.SaveDocumentInput) (*documents.DocumentDTO, error) {
			if input.Title == nil || *input.Title != "Renamed" {
				t.Fatalf("save input title = %v", input.Title)
			}
			if len(input.Content) == 0 {
				t.Fatal("save input missing content")
			}
			return &documents.DocumentDTO{ID: id, Title: *input.Title}, nil
		},
	}

	payload := `{"title":"Renamed","content":{"parties":{"partyOne":"Acme"}}}`
	req := httptest.NewRequest(http.MethodPut, "/documents/"+docID.String(), strings.NewReader(payload))
	w := httptest.NewRecorder()
	documentRouter(svc, uuid.New()).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestDocumentPDFSetsDownloadHeaders(t *testing.T) {
	docID := uuid.New()
	svc := &stubDocumentService{
		renderFn: func(context.Context, uuid.UUID, uuid.UUID) (*documents.PDFResult, error) {
			return &documents.PDFResult{
				Data:     []byte("%PDF-1.3 test"),
				Filename: "NDA Agreement.pdf",
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/documents/"+docID.String()+"/pdf", nil)
	w := httptest.NewRecorder()
	documentRouter(svc, uuid.New()).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("content type = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="NDA Agreement.pdf"` {
		t.Fatalf("content disposition = %q", got)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Fatal("body is not a PDF stream")
	}
}

func TestTemplateListPassesRegionFilter(t *testing.T) {
	var gotRegion string
	svc := &stubDocumentService{
		listFn: func(_ context.Context, _ uuid.UUID, region string) ([]documents.DocumentDTO, error) {
			gotRegion = region
			return []documents.DocumentDTO{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/templates?region=%20EU%20", nil)
	w := httptest.NewRecorder()
	documentRouter(svc, uuid.Nil).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotRegion != "EU" {
		t.Fatalf("region = %q, want EU", gotRegion)
	}
}

func TestTemplateListHonorsLimit(t *testing.T) {
	catalog := make([]documents.DocumentDTO, 5)
	for i := range catalog {
		catalog[i] = documents.DocumentDTO{ID: uuid.New(), Title: "Template"}
	}
	svc := &stubDocumentService{
		listFn: func(context.Context, uuid.UUID, string) ([]documents.DocumentDTO, error) {
			return catalog, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/templates?limit=2", nil)
	w := httptest.NewRecorder()
	documentRouter(svc, uuid.Nil).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var envelope struct {
		Data []documents.DocumentDTO `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("len = %d, want 2", len(envelope.Data))
	}

	req = httptest.NewRequest(http.MethodGet, "/templates?limit=zero", nil)
	w = httptest.NewRecorder()
	documentRouter(svc, uuid.Nil).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
