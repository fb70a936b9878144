package documents

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/docsai-app/docsai-backend/pkg/db/models"
	"github.com/docsai-app/docsai-backend/pkg/enums"
)

func newSQLiteRepository(t *testing.T) *Repository {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:documents_repo_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.Exec(`DROP TABLE IF EXISTS documents`).Error; err != nil {
		t.Fatalf("drop table: %v", err)
	}
	err = conn.Exec(`CREATE TABLE documents (
		id text PRIMARY KEY,
		title text NOT NULL,
		description text NOT NULL DEFAULT '',
		document_type text NOT NULL,
		content text,
		regions text,
		is_premium numeric NOT NULL DEFAULT 0,
		pricing_tier text NOT NULL DEFAULT 'free',
		owner_id text NOT NULL,
		created_at datetime,
		updated_at datetime
	)`).Error
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return NewRepository(conn)
}

func TestListTemplatesRegionFilterOnSQLite(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()
	templateOwner := uuid.Nil
	user := uuid.New()

	seed := []models.Document{
		{ID: uuid.New(), Title: "Invoice", DocumentType: enums.DocumentTypeInvoice, Regions: []string{"eu", "us"}, OwnerID: templateOwner},
		{ID: uuid.New(), Title: "NDA", DocumentType: enums.DocumentTypeNDA, Regions: []string{"us"}, OwnerID: templateOwner},
		{ID: uuid.New(), Title: "My Draft", DocumentType: enums.DocumentTypeNDA, Regions: []string{"eu"}, OwnerID: user},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seed document %d: %v", i, err)
		}
	}

	all, err := repo.ListTemplates(ctx, templateOwner, "")
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(all))
	}
	if all[0].Title != "Invoice" || all[1].Title != "NDA" {
		t.Fatalf("unexpected order: %q, %q", all[0].Title, all[1].Title)
	}

	filtered, err := repo.ListTemplates(ctx, templateOwner, "eu")
	if err != nil {
		t.Fatalf("ListTemplates with region: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Title != "Invoice" {
		t.Fatalf("expected only the eu template, got %+v", filtered)
	}
}
