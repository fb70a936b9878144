package forms

import (
	"testing"
	"time"
)

func TestStoreReadOnlyGatesAllMutators(t *testing.T) {
	content := NewContent()
	content.SetField("details", "from", "Acme")
	content.SetItems([]LineItem{{Description: "row", Quantity: "1", UnitPrice: "5"}})

	store := NewStore(content, true)

	now := time.Now()
	store.SetField("details", "from", "Changed")
	store.SetDateField("details", "date", &now)
	store.SetItems(nil)
	store.AddItem()
	store.RemoveItem(0)
	store.UpdateItem(0, "description", "changed")

	if got := store.Content().Field("details", "from"); got != "Acme" {
		t.Fatalf("read-only store mutated: %q", got)
	}
	if got := store.Content().Field("details", "date"); got != "" {
		t.Fatalf("read-only store stored date: %q", got)
	}
	items := store.Content().Items()
	if len(items) != 1 || items[0].Description != "row" {
		t.Fatalf("read-only store mutated items: %+v", items)
	}
}

func TestStoreWritableMutates(t *testing.T) {
	store := NewStore(nil, false)

	store.SetField("details", "from", "Acme")
	store.AddItem()
	store.UpdateItem(0, "description", "Widget")

	if got := store.Content().Field("details", "from"); got != "Acme" {
		t.Fatalf("expected field written, got %q", got)
	}
	items := store.Content().Items()
	if len(items) != 1 || items[0].Description != "Widget" {
		t.Fatalf("unexpected items: %+v", items)
	}
}
