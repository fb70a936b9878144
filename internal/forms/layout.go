package forms

import (
	"github.com/docsai-app/docsai-backend/pkg/enums"
)

// FieldLayout is one resolved field: spec plus the value currently stored.
type FieldLayout struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Kind  FieldKind `json:"kind"`
	Value string    `json:"value"`
}

// SectionLayout is one resolved section ready for presentation or printing.
type SectionLayout struct {
	Name    string        `json:"name"`
	Label   string        `json:"label"`
	IsItems bool          `json:"is_items,omitempty"`
	Fields  []FieldLayout `json:"fields,omitempty"`
	Items   []LineItem    `json:"items,omitempty"`
}

type layoutFunc func(content *Content) []SectionLayout

// layoutRegistry maps each known type to its section layout strategy.
// Unknown types resolve to the generic fallback at lookup time.
var layoutRegistry = buildLayoutRegistry()

func buildLayoutRegistry() map[enums.DocumentType]layoutFunc {
	registry := make(map[enums.DocumentType]layoutFunc, len(schemaRegistry))
	for documentType, schema := range schemaRegistry {
		registry[documentType] = schemaLayout(schema)
	}
	return registry
}

// Layout resolves the ordered section layout for a document. Known types
// follow their schema's declared order so output stays stable across saves;
// unknown types follow the content tree's own order.
func Layout(documentType enums.DocumentType, content *Content) []SectionLayout {
	if content == nil {
		content = NewContent()
	}
	if fn, ok := layoutRegistry[documentType]; ok {
		return fn(content)
	}
	return genericLayout(documentType, content)
}

// schemaLayout lays out the schema's sections in declared order, then any
// stored sections the schema does not know about, so no saved data is
// dropped from the output.
func schemaLayout(schema Schema) layoutFunc {
	return func(content *Content) []SectionLayout {
		known := make(map[string]bool, len(schema.Sections))
		out := make([]SectionLayout, 0, len(schema.Sections))

		for _, spec := range schema.Sections {
			known[spec.Name] = true
			out = append(out, resolveSection(spec, content))
		}

		for _, layout := range genericLayout(schema.DocumentType, content) {
			if !known[layout.Name] {
				out = append(out, layout)
			}
		}
		return out
	}
}

func resolveSection(spec SectionSpec, content *Content) SectionLayout {
	layout := SectionLayout{Name: spec.Name, Label: spec.Label, IsItems: spec.IsItems}
	if spec.IsItems {
		layout.Items = content.Items()
		return layout
	}

	seen := make(map[string]bool, len(spec.Fields))
	for _, f := range spec.Fields {
		seen[f.Name] = true
		layout.Fields = append(layout.Fields, FieldLayout{
			Name:  f.Name,
			Label: f.Label,
			Kind:  f.Kind,
			Value: content.Field(spec.Name, f.Name),
		})
	}
	// Keep stored fields the schema does not declare.
	for _, fieldName := range content.FieldNames(spec.Name) {
		if !seen[fieldName] {
			layout.Fields = append(layout.Fields, FieldLayout{
				Name:  fieldName,
				Label: Capitalize(fieldName),
				Kind:  FieldKindText,
				Value: content.Field(spec.Name, fieldName),
			})
		}
	}
	return layout
}

// genericLayout enumerates whatever sections and fields already exist in the
// stored content, in tree order.
func genericLayout(_ enums.DocumentType, content *Content) []SectionLayout {
	var out []SectionLayout
	for _, name := range content.SectionNames() {
		layout := SectionLayout{Name: name, Label: Capitalize(name)}
		switch {
		case name == ItemsSection:
			layout.IsItems = true
			layout.Items = content.Items()
		default:
			if value, ok := content.ScalarValue(name); ok {
				layout.Fields = []FieldLayout{{
					Name:  name,
					Label: Capitalize(name),
					Kind:  FieldKindText,
					Value: value,
				}}
				break
			}
			for _, fieldName := range content.FieldNames(name) {
				layout.Fields = append(layout.Fields, FieldLayout{
					Name:  fieldName,
					Label: Capitalize(fieldName),
					Kind:  FieldKindText,
					Value: content.Field(name, fieldName),
				})
			}
		}
		out = append(out, layout)
	}
	return out
}
