package pdf

import (
	"fmt"
	"io"
	"time"

	gofpdf "github.com/lvillar/gofpdf"
	"github.com/lvillar/gofpdf/table"

	"github.com/docsai-app/docsai-backend/internal/forms"
)

const fontFamily = "Helvetica"

// Document is the state a PDF is rendered from: the persisted record's title
// and description plus its resolved section layout.
type Document struct {
	Title       string
	Description string
	Sections    []forms.SectionLayout
}

// Render writes the paginated PDF to w and returns the page count. Output is
// a pure function of the document state; the creation date is pinned so two
// renders of the same state produce identical bytes.
func Render(w io.Writer, doc Document) (int, error) {
	pages := Paginate(doc.Title, doc.Description, doc.Sections)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetAutoPageBreak(false, 0)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}

	for _, page := range pages {
		pdf.AddPage()
		for _, el := range page.Elements {
			if err := renderElement(pdf, el); err != nil {
				return 0, err
			}
		}
	}

	if pdf.Err() {
		return 0, fmt.Errorf("render pdf: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return 0, fmt.Errorf("write pdf: %w", err)
	}
	return len(pages), nil
}

func renderElement(pdf *gofpdf.Fpdf, el Element) error {
	switch el.Kind {
	case ElementTitle:
		writeLine(pdf, el, "B", titleFontSize)
	case ElementDescription:
		writeLine(pdf, el, "", descriptionFontSize)
	case ElementSectionHeader:
		writeLine(pdf, el, "B", sectionFontSize)
	case ElementFieldLine:
		writeLine(pdf, el, "", fieldFontSize)
	case ElementTable:
		return renderTableSegment(pdf, el)
	}
	return nil
}

func writeLine(pdf *gofpdf.Fpdf, el Element, style string, size float64) {
	pdf.SetFont(fontFamily, style, size)
	pdf.SetXY(leftMargin, el.Y)
	pdf.CellFormat(0, size*0.5, el.Text, "", 0, "L", false, 0, "")
}

func renderTableSegment(pdf *gofpdf.Fpdf, el Element) error {
	pdf.SetFont(fontFamily, "", fieldFontSize)

	tbl := table.New(pdf)
	tbl.SetPosition(leftMargin, el.Y)
	tbl.SetColumnWidths(80, 25, 30, 35)
	tbl.SetStyle(table.TableStyle{
		CellPadding: table.UniformPadding(1.5),
		Border:      &table.BorderStyle{Width: 0.2, Color: table.RGBColor{R: 180, G: 180, B: 180}},
		HeaderStyle: &table.CellStyle{
			FillColor: &table.RGBColor{R: 235, G: 235, B: 235},
			Font:      &table.FontSpec{Family: fontFamily, Style: "B", Size: fieldFontSize},
		},
	})

	header := tbl.AddHeaderRow()
	for _, col := range el.Table.Columns {
		header.AddCell(col)
	}
	for _, cells := range el.Table.Rows {
		row := tbl.AddRow()
		row.AddCell(cells[0])
		row.AddCell(cells[1]).SetAlign("R")
		row.AddCell(cells[2]).SetAlign("R")
		row.AddCell(cells[3]).SetAlign("R")
	}

	if err := tbl.Render(); err != nil {
		return fmt.Errorf("render items table: %w", err)
	}
	return nil
}
