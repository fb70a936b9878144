package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ItemsSection is the reserved section name holding the ordered line items.
const ItemsSection = "items"

type sectionKind int

const (
	sectionKindObject sectionKind = iota
	sectionKindItems
	sectionKindScalar
)

// LineItem is one row of the items collection. Quantity and UnitPrice are
// stored as strings and parsed leniently when totals are computed.
type LineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
}

// UnmarshalJSON accepts numbers as well as strings for the numeric fields,
// since older clients persisted them unquoted.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	li.Description = scalarString(raw["description"])
	li.Quantity = scalarString(raw["quantity"])
	li.UnitPrice = scalarString(raw["unitPrice"])
	return nil
}

// field keeps both the display string the form layer works with and the raw
// JSON it was parsed from. raw is written back verbatim on save and cleared
// when a mutator overwrites the value.
type field struct {
	name  string
	value string
	raw   json.RawMessage
}

type section struct {
	name   string
	kind   sectionKind
	fields []field
	items  []LineItem
	value  string
	raw    json.RawMessage
}

// Content is the nested form-content tree of one document. Sections and
// fields keep the order in which they were first written, so serialization
// and PDF emission are deterministic across saves.
type Content struct {
	sections []*section
}

// NewContent returns an empty tree.
func NewContent() *Content {
	return &Content{}
}

// ParseContent decodes the stored JSON content. A missing or null payload
// yields an empty tree. Key order is preserved.
func ParseContent(raw json.RawMessage) (*Content, error) {
	c := NewContent()
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return c, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("content must be a JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode section name: %w", err)
		}
		name := keyTok.(string)

		if name == ItemsSection {
			var items []LineItem
			if err := dec.Decode(&items); err != nil {
				return nil, fmt.Errorf("decode items: %w", err)
			}
			c.sections = append(c.sections, &section{name: name, kind: sectionKindItems, items: items})
			continue
		}

		sec, err := parseSection(dec, name)
		if err != nil {
			return nil, err
		}
		c.sections = append(c.sections, sec)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode content close: %w", err)
	}
	return c, nil
}

func parseSection(dec *json.Decoder, name string) (*section, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode section %q: %w", name, err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		// Scalar or array value stored at the top level. Keep it verbatim so
		// a later save does not drop it.
		return &section{
			name:  name,
			kind:  sectionKindScalar,
			value: scalarString(raw),
			raw:   append(json.RawMessage(nil), trimmed...),
		}, nil
	}

	inner := json.NewDecoder(bytes.NewReader(trimmed))
	inner.UseNumber()
	if _, err := inner.Token(); err != nil {
		return nil, fmt.Errorf("decode section %q open: %w", name, err)
	}

	sec := &section{name: name, kind: sectionKindObject}
	for inner.More() {
		keyTok, err := inner.Token()
		if err != nil {
			return nil, fmt.Errorf("decode field name in %q: %w", name, err)
		}
		var value json.RawMessage
		if err := inner.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode field value in %q: %w", name, err)
		}
		sec.fields = append(sec.fields, field{
			name:  keyTok.(string),
			value: scalarString(value),
			raw:   append(json.RawMessage(nil), bytes.TrimSpace(value)...),
		})
	}
	return sec, nil
}

// scalarString renders a raw JSON value as the string the form layer works
// with: strings are unquoted, null and absent become empty, everything else
// keeps its JSON text.
func scalarString(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

// MarshalJSON emits sections and fields in tree order. Values that were
// parsed and never mutated are written back byte for byte, so numbers,
// arrays, and nested objects survive a load and save untouched.
func (c *Content) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range c.sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, sec.name)
		buf.WriteByte(':')
		switch sec.kind {
		case sectionKindItems:
			items := sec.items
			if items == nil {
				items = []LineItem{}
			}
			encoded, err := json.Marshal(items)
			if err != nil {
				return nil, err
			}
			buf.Write(encoded)
		case sectionKindScalar:
			if len(sec.raw) > 0 {
				buf.Write(sec.raw)
			} else {
				writeJSONString(&buf, sec.value)
			}
		default:
			buf.WriteByte('{')
			for j, f := range sec.fields {
				if j > 0 {
					buf.WriteByte(',')
				}
				writeJSONString(&buf, f.name)
				buf.WriteByte(':')
				if len(f.raw) > 0 {
					buf.Write(f.raw)
				} else {
					writeJSONString(&buf, f.value)
				}
			}
			buf.WriteByte('}')
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	encoded, _ := json.Marshal(s)
	buf.Write(encoded)
}

// Field returns the stored value for section.field, or "" when absent.
func (c *Content) Field(sectionName, fieldName string) string {
	sec := c.find(sectionName)
	if sec == nil {
		return ""
	}
	for _, f := range sec.fields {
		if f.name == fieldName {
			return f.value
		}
	}
	return ""
}

// SetField replaces exactly one leaf, creating the section or field on first
// write. Sibling sections and fields are never touched. Writing to the
// reserved items section is a no-op.
func (c *Content) SetField(sectionName, fieldName, value string) {
	if sectionName == ItemsSection {
		return
	}
	sec := c.find(sectionName)
	if sec == nil {
		sec = &section{name: sectionName, kind: sectionKindObject}
		c.sections = append(c.sections, sec)
	}
	if sec.kind != sectionKindObject {
		return
	}
	for i := range sec.fields {
		if sec.fields[i].name == fieldName {
			sec.fields[i].value = value
			sec.fields[i].raw = nil
			return
		}
	}
	sec.fields = append(sec.fields, field{name: fieldName, value: value})
}

// SetDateField stores an ISO calendar date (YYYY-MM-DD), or "" when cleared.
// Time-of-day precision is never persisted.
func (c *Content) SetDateField(sectionName, fieldName string, date *time.Time) {
	if date == nil {
		c.SetField(sectionName, fieldName, "")
		return
	}
	c.SetField(sectionName, fieldName, date.Format("2006-01-02"))
}

// Items returns a copy of the ordered line-item sequence.
func (c *Content) Items() []LineItem {
	sec := c.find(ItemsSection)
	if sec == nil {
		return nil
	}
	out := make([]LineItem, len(sec.items))
	copy(out, sec.items)
	return out
}

// SetItems replaces the entire line-item sequence atomically.
func (c *Content) SetItems(items []LineItem) {
	sec := c.ensureItems()
	sec.items = make([]LineItem, len(items))
	copy(sec.items, items)
}

// AddItem appends a line item with default quantity 1 and unit price 0.
func (c *Content) AddItem() {
	sec := c.ensureItems()
	sec.items = append(sec.items, LineItem{Quantity: "1", UnitPrice: "0"})
}

// RemoveItem deletes the item at the given position; later items shift down.
// An out-of-range index is a no-op.
func (c *Content) RemoveItem(index int) {
	sec := c.find(ItemsSection)
	if sec == nil || index < 0 || index >= len(sec.items) {
		return
	}
	sec.items = append(sec.items[:index], sec.items[index+1:]...)
}

// UpdateItem mutates one field of one line item without disturbing others.
// Out-of-range indices and unknown field names are no-ops.
func (c *Content) UpdateItem(index int, fieldName, value string) {
	sec := c.find(ItemsSection)
	if sec == nil || index < 0 || index >= len(sec.items) {
		return
	}
	switch fieldName {
	case "description":
		sec.items[index].Description = value
	case "quantity":
		sec.items[index].Quantity = value
	case "unitPrice":
		sec.items[index].UnitPrice = value
	}
}

// HasSection reports whether the named section exists.
func (c *Content) HasSection(name string) bool {
	return c.find(name) != nil
}

// SectionNames returns the section names in tree order.
func (c *Content) SectionNames() []string {
	names := make([]string, 0, len(c.sections))
	for _, sec := range c.sections {
		names = append(names, sec.name)
	}
	return names
}

// FieldNames returns the field names of a section in tree order. The scalar
// and items kinds have no fields.
func (c *Content) FieldNames(sectionName string) []string {
	sec := c.find(sectionName)
	if sec == nil || sec.kind != sectionKindObject {
		return nil
	}
	names := make([]string, 0, len(sec.fields))
	for _, f := range sec.fields {
		names = append(names, f.name)
	}
	return names
}

// ScalarValue returns the verbatim value of a scalar top-level entry.
func (c *Content) ScalarValue(sectionName string) (string, bool) {
	sec := c.find(sectionName)
	if sec == nil || sec.kind != sectionKindScalar {
		return "", false
	}
	return sec.value, true
}

// Clone returns a deep copy of the tree.
func (c *Content) Clone() *Content {
	out := NewContent()
	out.sections = make([]*section, 0, len(c.sections))
	for _, sec := range c.sections {
		dup := &section{name: sec.name, kind: sec.kind, value: sec.value, raw: sec.raw}
		dup.fields = make([]field, len(sec.fields))
		copy(dup.fields, sec.fields)
		dup.items = make([]LineItem, len(sec.items))
		copy(dup.items, sec.items)
		out.sections = append(out.sections, dup)
	}
	return out
}

func (c *Content) find(name string) *section {
	for _, sec := range c.sections {
		if sec.name == name {
			return sec
		}
	}
	return nil
}

func (c *Content) ensureItems() *section {
	sec := c.find(ItemsSection)
	if sec == nil {
		sec = &section{name: ItemsSection, kind: sectionKindItems}
		c.sections = append(c.sections, sec)
	}
	return sec
}
