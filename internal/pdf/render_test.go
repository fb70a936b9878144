package pdf

import (
	"bytes"
	"testing"

	"github.com/docsai-app/docsai-backend/internal/forms"
	"github.com/docsai-app/docsai-backend/pkg/enums"
)

func invoiceDocument(t *testing.T) Document {
	t.Helper()
	content, err := forms.ParseContent([]byte(`{"details":{"from":"Acme","to":"Widgets Inc","invoiceNumber":"INV-7"},"items":[{"description":"Widget","quantity":"3","unitPrice":"10"},{"description":"Gadget","quantity":"2","unitPrice":"25"}],"terms":{"taxRate":"10"}}`))
	if err != nil {
		t.Fatalf("ParseContent: %v", err)
	}
	return Document{
		Title:       "March Invoice",
		Description: "Monthly billing",
		Sections:    forms.Layout(enums.DocumentTypeInvoice, content),
	}
}

func TestRenderProducesPDF(t *testing.T) {
	var buf bytes.Buffer

	pageCount, err := Render(&buf, invoiceDocument(t))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if pageCount != 1 {
		t.Fatalf("expected 1 page, got %d", pageCount)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output is not a PDF stream")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	doc := invoiceDocument(t)

	var first, second bytes.Buffer
	if _, err := Render(&first, doc); err != nil {
		t.Fatalf("first render: %v", err)
	}
	if _, err := Render(&second, doc); err != nil {
		t.Fatalf("second render: %v", err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatal("identical state must produce identical bytes")
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	var buf bytes.Buffer

	pageCount, err := Render(&buf, Document{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if pageCount != 1 {
		t.Fatalf("expected 1 page, got %d", pageCount)
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"March Invoice", "March Invoice.pdf"},
		{"a/b\\c:d", "a_b_c_d.pdf"},
		{"  report?  ", "report.pdf"},
		{"", "document.pdf"},
		{"***", "document.pdf"},
	}

	for _, tc := range cases {
		if got := Filename(tc.title); got != tc.want {
			t.Errorf("Filename(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
