package pdf

import (
	"fmt"
	"testing"

	"github.com/docsai-app/docsai-backend/internal/forms"
	"github.com/docsai-app/docsai-backend/pkg/enums"
)

func sectionWithFields(name string, count int) forms.SectionLayout {
	section := forms.SectionLayout{Name: name, Label: forms.Capitalize(name)}
	for i := 0; i < count; i++ {
		section.Fields = append(section.Fields, forms.FieldLayout{
			Name:  fmt.Sprintf("field%d", i),
			Label: fmt.Sprintf("Field%d", i),
			Value: fmt.Sprintf("value %d", i),
		})
	}
	return section
}

func TestPaginateSinglePageLayout(t *testing.T) {
	pages := Paginate("Simple NDA", "Between two parties", []forms.SectionLayout{
		sectionWithFields("details", 4),
	})

	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}

	elements := pages[0].Elements
	if elements[0].Kind != ElementTitle || elements[0].Text != "Simple NDA" || elements[0].Y != titleY {
		t.Fatalf("unexpected title element: %+v", elements[0])
	}
	if elements[1].Kind != ElementDescription || elements[1].Y != descriptionY {
		t.Fatalf("unexpected description element: %+v", elements[1])
	}
	if elements[2].Kind != ElementSectionHeader || elements[2].Y != contentStart {
		t.Fatalf("unexpected section header: %+v", elements[2])
	}
	if elements[3].Kind != ElementFieldLine || elements[3].Y != contentStart+sectionHeaderAdvance {
		t.Fatalf("unexpected first field line: %+v", elements[3])
	}
}

func TestPaginateLongSectionBreaksAtTopMargin(t *testing.T) {
	// 40 one-line fields cannot fit below the content start on one page.
	pages := Paginate("Long Doc", "Overflow test", []forms.SectionLayout{
		sectionWithFields("details", 40),
	})

	if len(pages) < 2 {
		t.Fatalf("expected a page break, got %d page(s)", len(pages))
	}

	overflow := pages[1].Elements
	if len(overflow) == 0 {
		t.Fatal("second page is empty")
	}
	first := overflow[0]
	if first.Kind != ElementFieldLine {
		t.Fatalf("expected overflow to continue with a field line, got %+v", first)
	}
	if first.Y != topMargin {
		t.Fatalf("overflow must continue at the top margin, got Y=%f", first.Y)
	}

	// No element on any page may sit past the printable threshold.
	for pageIdx, page := range pages {
		for _, el := range page.Elements {
			if el.Y > breakThreshold {
				t.Fatalf("page %d: element below printable area: %+v", pageIdx+1, el)
			}
		}
	}
}

func TestPaginateEmptyTitleAndDescription(t *testing.T) {
	pages := Paginate("", "", nil)

	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].Elements[0].Text != "" || pages[0].Elements[1].Text != "" {
		t.Fatal("empty title and description must be emitted as empty strings")
	}
}

func TestPaginateItemsTable(t *testing.T) {
	items := []forms.LineItem{
		{Description: "Widget", Quantity: "3", UnitPrice: "10"},
		{Description: "Gadget", Quantity: "oops", UnitPrice: "5"},
	}
	pages := Paginate("Invoice", "March", []forms.SectionLayout{
		{Name: forms.ItemsSection, Label: "Items", IsItems: true, Items: items},
	})

	var segment *TableSegment
	for _, el := range pages[0].Elements {
		if el.Kind == ElementTable {
			segment = el.Table
		}
	}
	if segment == nil {
		t.Fatal("no table segment placed")
	}
	if len(segment.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(segment.Rows))
	}
	if segment.Rows[0][3] != "30.00" {
		t.Fatalf("expected row total 30.00, got %q", segment.Rows[0][3])
	}
	if segment.Rows[1][3] != "0.00" {
		t.Fatalf("unparsable quantity must total 0.00, got %q", segment.Rows[1][3])
	}
}

func TestPaginateLargeTableRepeatsHeader(t *testing.T) {
	var items []forms.LineItem
	for i := 0; i < 40; i++ {
		items = append(items, forms.LineItem{
			Description: fmt.Sprintf("Line %d", i),
			Quantity:    "1",
			UnitPrice:   "2",
		})
	}
	pages := Paginate("Invoice", "Big order", []forms.SectionLayout{
		{Name: forms.ItemsSection, Label: "Items", IsItems: true, Items: items},
	})

	if len(pages) < 2 {
		t.Fatalf("expected table to span pages, got %d page(s)", len(pages))
	}

	totalRows := 0
	for pageIdx, page := range pages {
		for _, el := range page.Elements {
			if el.Kind == ElementTable {
				if len(el.Table.Columns) != 4 {
					t.Fatalf("page %d: segment missing header columns", pageIdx+1)
				}
				totalRows += len(el.Table.Rows)
			}
		}
	}
	if totalRows != len(items) {
		t.Fatalf("expected %d rows across segments, got %d", len(items), totalRows)
	}
}

func TestPaginateTableNearPageBottomStartsOnNextPage(t *testing.T) {
	// 34 field lines leave the items section header just above the break
	// threshold, so the table itself must move to the next page instead of
	// dropping a header-only segment at the bottom edge.
	pages := Paginate("Invoice", "Tight fit", []forms.SectionLayout{
		sectionWithFields("details", 34),
		{Name: forms.ItemsSection, Label: "Items", IsItems: true, Items: []forms.LineItem{
			{Description: "Widget", Quantity: "1", UnitPrice: "2"},
		}},
	})

	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	for _, el := range pages[0].Elements {
		if el.Kind == ElementTable {
			t.Fatalf("table segment placed on page 1 at y=%v", el.Y)
		}
	}

	var table *Element
	for i, el := range pages[1].Elements {
		if el.Kind == ElementTable {
			table = &pages[1].Elements[i]
		}
	}
	if table == nil {
		t.Fatal("table segment missing from page 2")
	}
	if table.Y != topMargin {
		t.Fatalf("table y = %v, want %v", table.Y, topMargin)
	}
	if len(table.Table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Table.Rows))
	}
}

func TestPaginateDeterministic(t *testing.T) {
	content, err := forms.ParseContent([]byte(`{"details":{"from":"Acme","to":"W"},"items":[{"description":"Widget","quantity":"3","unitPrice":"10"}],"terms":{"taxRate":"10"}}`))
	if err != nil {
		t.Fatalf("ParseContent: %v", err)
	}
	sections := forms.Layout(enums.DocumentTypeInvoice, content)

	first := Paginate("Invoice", "March", sections)
	second := Paginate("Invoice", "March", sections)

	if len(first) != len(second) {
		t.Fatalf("page count differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if len(first[i].Elements) != len(second[i].Elements) {
			t.Fatalf("page %d element count differs", i+1)
		}
		for j := range first[i].Elements {
			a, b := first[i].Elements[j], second[i].Elements[j]
			if a.Kind != b.Kind || a.Text != b.Text || a.Y != b.Y {
				t.Fatalf("page %d element %d differs: %+v vs %+v", i+1, j, a, b)
			}
		}
	}
}
