package pdf

import (
	"fmt"

	"github.com/docsai-app/docsai-backend/internal/forms"
)

// Page geometry in millimeters, A4 portrait.
const (
	leftMargin   = 20.0
	topMargin    = 20.0
	titleY       = 20.0
	descriptionY = 30.0
	contentStart = 50.0

	sectionHeaderAdvance = 10.0
	fieldLineAdvance     = 6.0
	sectionGap           = 10.0
	tableRowAdvance      = 8.0
	tableGap             = 10.0

	// Vertical cursor positions past this start a new page.
	breakThreshold = 280.0

	titleFontSize       = 20.0
	descriptionFontSize = 12.0
	sectionFontSize     = 14.0
	fieldFontSize       = 10.0
)

// ElementKind classifies one placed output element.
type ElementKind int

const (
	ElementTitle ElementKind = iota
	ElementDescription
	ElementSectionHeader
	ElementFieldLine
	ElementTable
)

var itemTableColumns = []string{"Description", "Quantity", "Price", "Total"}

// TableSegment is the slice of the items table placed on one page. The
// column header repeats on every segment.
type TableSegment struct {
	Columns []string
	Rows    [][]string
}

// Element is one positioned piece of output.
type Element struct {
	Kind  ElementKind
	Text  string
	Y     float64
	Table *TableSegment
}

// Page is the ordered element list for one output page.
type Page struct {
	Elements []Element
}

// Paginate lays out title, description, and the resolved sections into
// positioned pages. It is a pure function of its inputs: identical state
// yields identical pages, regardless of what any caller displayed.
func Paginate(title, description string, sections []forms.SectionLayout) []Page {
	layout := &paginator{}
	layout.newPage()

	layout.place(Element{Kind: ElementTitle, Text: title, Y: titleY})
	layout.place(Element{Kind: ElementDescription, Text: description, Y: descriptionY})
	layout.y = contentStart

	for _, section := range sections {
		layout.breakIfNeeded()
		layout.place(Element{Kind: ElementSectionHeader, Text: section.Label, Y: layout.y})
		layout.y += sectionHeaderAdvance

		if section.IsItems {
			layout.placeItems(section.Items)
		} else {
			layout.placeFields(section.Fields)
		}

		layout.y += sectionGap
	}

	return layout.pages
}

type paginator struct {
	pages []Page
	y     float64
}

func (p *paginator) newPage() {
	p.pages = append(p.pages, Page{})
	p.y = topMargin
}

func (p *paginator) place(el Element) {
	last := len(p.pages) - 1
	p.pages[last].Elements = append(p.pages[last].Elements, el)
}

func (p *paginator) breakIfNeeded() {
	if p.y > breakThreshold {
		p.newPage()
	}
}

// placeFields emits one "Label: value" line per field, checking for page
// overflow after every line so long sections span pages cleanly.
func (p *paginator) placeFields(fields []forms.FieldLayout) {
	for _, f := range fields {
		p.place(Element{
			Kind: ElementFieldLine,
			Text: fmt.Sprintf("%s: %s", f.Label, f.Value),
			Y:    p.y,
		})
		p.y += fieldLineAdvance
		p.breakIfNeeded()
	}
}

// placeItems emits the items table, splitting it into per-page segments with
// the column header repeated at the top of each segment. The first segment
// breaks to a fresh page when the section header left no room below it, so a
// column header never dangles at the bottom edge.
func (p *paginator) placeItems(items []forms.LineItem) {
	p.breakIfNeeded()
	segment := p.startTableSegment()
	for _, item := range items {
		if p.y > breakThreshold {
			p.newPage()
			segment = p.startTableSegment()
		}
		segment.Rows = append(segment.Rows, []string{
			item.Description,
			item.Quantity,
			item.UnitPrice,
			forms.LineTotal(item).StringFixed(2),
		})
		p.y += tableRowAdvance
	}
	p.y += tableGap
}

func (p *paginator) startTableSegment() *TableSegment {
	segment := &TableSegment{Columns: itemTableColumns}
	p.place(Element{Kind: ElementTable, Y: p.y, Table: segment})
	p.y += tableRowAdvance
	return segment
}
