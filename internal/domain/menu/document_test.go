package menu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/amante/menutools/internal/domain"
)

const sampleMenu = `{
  "venue": "food",
  "name": "Food Menu",
  "categories": [
    {
      "id": "soups",
      "name": "Soups",
      "items": [
        {"id": "food-soup-001", "name": "Test Veg", "price": 299, "dietary": ["veg"], "description": "fresh local greens"}
      ]
    },
    {
      "id": "appetizers",
      "items": [
        {"id": "food-app-001", "name": "Chicken Lollipop", "category": "appetizers", "allergens": ["egg"]}
      ]
    }
  ],
  "lastUpdated": "2025-01-01"
}`

func TestParse_Structure(t *testing.T) {
	doc, err := Parse([]byte(sampleMenu))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(doc.Categories))
	}
	if doc.Categories[0].ID() != "soups" {
		t.Errorf("expected first category soups, got %q", doc.Categories[0].ID())
	}
	if doc.ItemCount() != 2 {
		t.Errorf("expected 2 items, got %d", doc.ItemCount())
	}
	cat, ok := doc.Category("appetizers")
	if !ok {
		t.Fatal("expected appetizers category")
	}
	if cat.Items[0].Name() != "Chicken Lollipop" {
		t.Errorf("unexpected item name %q", cat.Items[0].Name())
	}
	if _, ok := doc.Category("desserts"); ok {
		t.Error("desserts should not exist")
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"categories": [`},
		{"array root", `[]`},
		{"no categories", `{"name": "x"}`},
		{"categories not array", `{"categories": {}}`},
		{"category without id", `{"categories": [{"items": []}]}`},
		{"category without items", `{"categories": [{"id": "soups"}]}`},
		{"item not object", `{"categories": [{"id": "soups", "items": ["soup"]}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if !errors.Is(err, domain.ErrMalformedMenu) {
				t.Fatalf("expected ErrMalformedMenu, got %v", err)
			}
		})
	}
}

func TestMarshal_PreservesUnknownFieldsAndOrder(t *testing.T) {
	doc, err := Parse([]byte(sampleMenu))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := doc.Categories[1].Items[0]
	if err := it.Set(FieldCuisine, "asian"); err != nil {
		t.Fatal(err)
	}

	out, err := doc.Marshal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(out)

	for _, want := range []string{`"venue": "food"`, `"lastUpdated": "2025-01-01"`, `"allergens": [`, `"cuisine": "asian"`} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %s:\n%s", want, s)
		}
	}
	if strings.Index(s, `"venue"`) > strings.Index(s, `"categories"`) {
		t.Error("top-level key order changed")
	}
	if strings.Index(s, `"allergens"`) > strings.Index(s, `"cuisine"`) {
		t.Error("new field should be appended after existing ones")
	}
	if !strings.Contains(s, "\n  \"categories\": [\n") {
		t.Errorf("expected two-space indentation:\n%s", s)
	}

	again, err := Parse(out)
	if err != nil {
		t.Fatalf("marshaled output does not parse: %v", err)
	}
	if again.Categories[1].Items[0].String(FieldCuisine) != "asian" {
		t.Error("round trip lost the new field")
	}
}

func TestClone_IsDeep(t *testing.T) {
	doc, err := Parse([]byte(sampleMenu))
	if err != nil {
		t.Fatal(err)
	}
	before, _ := doc.Marshal()

	cp := doc.Clone()
	if err := cp.Categories[0].Items[0].Set(FieldCuisine, "fusion"); err != nil {
		t.Fatal(err)
	}
	cp.Categories[0].Append(Item{raw: []byte(`{"id":"food-soup-002"}`)})

	after, _ := doc.Marshal()
	if !bytes.Equal(before, after) {
		t.Error("mutating the clone changed the original")
	}
	if doc.ItemCount() != 2 || cp.ItemCount() != 3 {
		t.Errorf("unexpected counts: original=%d clone=%d", doc.ItemCount(), cp.ItemCount())
	}
}

func TestParseDomain(t *testing.T) {
	for _, s := range []string{"food", "bar", "cafe"} {
		d, err := ParseDomain(s)
		if err != nil || d.String() != s {
			t.Errorf("ParseDomain(%q) = %q, %v", s, d, err)
		}
	}
	if _, err := ParseDomain("Food"); !errors.Is(err, domain.ErrUnknownDomain) {
		t.Errorf("expected ErrUnknownDomain, got %v", err)
	}
}
