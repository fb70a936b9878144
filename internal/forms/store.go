package forms

import "time"

// Store wraps one document's content tree with the caller's mutation rights.
// When read-only (unauthenticated caller, or insufficient tier for a premium
// document) every mutator is a silent no-op; reads always work.
type Store struct {
	content  *Content
	readOnly bool
}

// NewStore seeds a store from a parsed content tree.
func NewStore(content *Content, readOnly bool) *Store {
	if content == nil {
		content = NewContent()
	}
	return &Store{content: content, readOnly: readOnly}
}

// ReadOnly reports whether mutation is gated off.
func (s *Store) ReadOnly() bool {
	return s.readOnly
}

// Content exposes the underlying tree for rendering and serialization.
func (s *Store) Content() *Content {
	return s.content
}

func (s *Store) SetField(section, field, value string) {
	if s.readOnly {
		return
	}
	s.content.SetField(section, field, value)
}

func (s *Store) SetDateField(section, field string, date *time.Time) {
	if s.readOnly {
		return
	}
	s.content.SetDateField(section, field, date)
}

func (s *Store) SetItems(items []LineItem) {
	if s.readOnly {
		return
	}
	s.content.SetItems(items)
}

func (s *Store) AddItem() {
	if s.readOnly {
		return
	}
	s.content.AddItem()
}

func (s *Store) RemoveItem(index int) {
	if s.readOnly {
		return
	}
	s.content.RemoveItem(index)
}

func (s *Store) UpdateItem(index int, field, value string) {
	if s.readOnly {
		return
	}
	s.content.UpdateItem(index, field, value)
}
