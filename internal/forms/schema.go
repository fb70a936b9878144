package forms

import (
	"github.com/docsai-app/docsai-backend/pkg/enums"
)

// FieldKind classifies how a field is captured and rendered.
type FieldKind string

const (
	FieldKindText      FieldKind = "text"
	FieldKindMultiline FieldKind = "multiline"
	FieldKindDate      FieldKind = "date"
	FieldKindNumeric   FieldKind = "numeric"
)

// FieldSpec declares one form field within a section.
type FieldSpec struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
}

// SectionSpec declares one ordered form section. IsItems marks the reserved
// line-item collection.
type SectionSpec struct {
	Name    string      `json:"name"`
	Label   string      `json:"label"`
	IsItems bool        `json:"is_items,omitempty"`
	Fields  []FieldSpec `json:"fields,omitempty"`
}

// Schema is the ordered section list for one document type.
type Schema struct {
	DocumentType enums.DocumentType `json:"document_type"`
	Sections     []SectionSpec      `json:"sections"`
}

func text(name string, required bool) FieldSpec {
	return FieldSpec{Name: name, Label: Capitalize(name), Kind: FieldKindText, Required: required}
}

func multiline(name string) FieldSpec {
	return FieldSpec{Name: name, Label: Capitalize(name), Kind: FieldKindMultiline}
}

func date(name string) FieldSpec {
	return FieldSpec{Name: name, Label: Capitalize(name), Kind: FieldKindDate}
}

func numeric(name string) FieldSpec {
	return FieldSpec{Name: name, Label: Capitalize(name), Kind: FieldKindNumeric}
}

var schemaRegistry = map[enums.DocumentType]Schema{
	enums.DocumentTypeNDA: {
		DocumentType: enums.DocumentTypeNDA,
		Sections: []SectionSpec{
			{Name: "details", Label: "Details", Fields: []FieldSpec{
				text("parties", true),
				date("effectiveDate"),
				multiline("purpose"),
				multiline("scope"),
			}},
			{Name: "terms", Label: "Terms", Fields: []FieldSpec{
				multiline("obligations"),
				multiline("restrictions"),
				text("duration", false),
				multiline("termination"),
			}},
			{Name: "signatures", Label: "Signatures", Fields: []FieldSpec{
				text("party1", true),
				text("party2", true),
				text("witnesses", false),
				date("date"),
			}},
		},
	},
	enums.DocumentTypeEmploymentContract: {
		DocumentType: enums.DocumentTypeEmploymentContract,
		Sections: []SectionSpec{
			{Name: "details", Label: "Details", Fields: []FieldSpec{
				text("employer", true),
				text("employee", true),
				text("position", true),
				date("startDate"),
			}},
			{Name: "terms", Label: "Terms", Fields: []FieldSpec{
				multiline("duties"),
				text("compensation", true),
				multiline("benefits"),
				multiline("termination"),
			}},
			{Name: "signatures", Label: "Signatures", Fields: []FieldSpec{
				text("employer", true),
				text("employee", true),
				text("witnesses", false),
				date("date"),
			}},
		},
	},
	enums.DocumentTypeInvoice: {
		DocumentType: enums.DocumentTypeInvoice,
		Sections: []SectionSpec{
			{Name: "details", Label: "Details", Fields: []FieldSpec{
				text("from", true),
				text("to", true),
				text("invoiceNumber", true),
				date("date"),
			}},
			{Name: ItemsSection, Label: "Items", IsItems: true},
			{Name: "terms", Label: "Terms", Fields: []FieldSpec{
				numeric("taxRate"),
				multiline("paymentTerms"),
				multiline("latePayment"),
				multiline("notes"),
			}},
		},
	},
}

// SchemaFor returns the hand-authored schema for a known document type. The
// second result is false for types that only have the generic fallback.
func SchemaFor(documentType enums.DocumentType) (Schema, bool) {
	schema, ok := schemaRegistry[documentType]
	return schema, ok
}

// GenericSchema derives a schema from the shape of stored content. Labels
// come from the key names, so schemaless documents stay editable before a
// bespoke schema is authored.
func GenericSchema(documentType enums.DocumentType, content *Content) Schema {
	schema := Schema{DocumentType: documentType}
	for _, name := range content.SectionNames() {
		spec := SectionSpec{Name: name, Label: Capitalize(name)}
		if name == ItemsSection {
			spec.IsItems = true
		} else {
			for _, fieldName := range content.FieldNames(name) {
				spec.Fields = append(spec.Fields, text(fieldName, false))
			}
		}
		schema.Sections = append(schema.Sections, spec)
	}
	return schema
}

// Capitalize upper-cases the first byte of a key for display, matching how
// section headers and field labels are printed.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
