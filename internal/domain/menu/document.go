package menu

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/amante/menutools/internal/domain"
)

// Document is a whole menu: its categories plus any top-level fields
// (venue, name, lastUpdated, ...), which are kept verbatim.
type Document struct {
	raw        []byte
	Categories []*Category
}

// Category is a named group of items.
type Category struct {
	raw   []byte
	id    string
	Items []*Item
}

// ID returns the category id, the join key into the classification tables.
func (c *Category) ID() string { return c.id }

// Append adds an item at the end of the category.
func (c *Category) Append(it Item) {
	c.Items = append(c.Items, &it)
}

var prettyOptions = &pretty.Options{Indent: "  "}

// Parse decodes a menu document. Only presence is checked: a top-level
// categories array whose entries carry an id and an items array of objects.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON: %w", domain.ErrMalformedMenu)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("top level is not an object: %w", domain.ErrMalformedMenu)
	}
	cats := root.Get("categories")
	if !cats.IsArray() {
		return nil, fmt.Errorf("categories array missing: %w", domain.ErrMalformedMenu)
	}

	doc := &Document{raw: clone(data)}
	for ci, c := range cats.Array() {
		if !c.IsObject() {
			return nil, fmt.Errorf("categories[%d] is not an object: %w", ci, domain.ErrMalformedMenu)
		}
		id := c.Get("id")
		if id.Type != gjson.String {
			return nil, fmt.Errorf("categories[%d].id missing: %w", ci, domain.ErrMalformedMenu)
		}
		items := c.Get("items")
		if !items.IsArray() {
			return nil, fmt.Errorf("category %q: items array missing: %w", id.Str, domain.ErrMalformedMenu)
		}

		cat := &Category{raw: []byte(c.Raw), id: id.Str}
		for ii, raw := range items.Array() {
			it, err := NewItem([]byte(raw.Raw))
			if err != nil {
				return nil, fmt.Errorf("category %q item %d: %w", id.Str, ii, err)
			}
			cat.Items = append(cat.Items, &it)
		}
		doc.Categories = append(doc.Categories, cat)
	}
	return doc, nil
}

// Clone returns a deep copy; mutating it never touches the receiver.
func (d *Document) Clone() *Document {
	out := &Document{raw: clone(d.raw), Categories: make([]*Category, len(d.Categories))}
	for i, c := range d.Categories {
		cc := &Category{raw: clone(c.raw), id: c.id, Items: make([]*Item, len(c.Items))}
		for j, it := range c.Items {
			cc.Items[j] = &Item{raw: clone(it.raw)}
		}
		out.Categories[i] = cc
	}
	return out
}

// Category finds a category by id.
func (d *Document) Category(id string) (*Category, bool) {
	for _, c := range d.Categories {
		if c.id == id {
			return c, true
		}
	}
	return nil, false
}

// ItemCount returns the number of items across all categories.
func (d *Document) ItemCount() int {
	n := 0
	for _, c := range d.Categories {
		n += len(c.Items)
	}
	return n
}

// Marshal serializes the document with two-space indentation, keeping key order.
func (d *Document) Marshal() ([]byte, error) {
	cats := make([][]byte, len(d.Categories))
	for i, c := range d.Categories {
		items := make([][]byte, len(c.Items))
		for j, it := range c.Items {
			items[j] = it.raw
		}
		raw, err := sjson.SetRawBytes(c.raw, "items", joinArray(items))
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", c.id, err)
		}
		cats[i] = raw
	}

	raw, err := sjson.SetRawBytes(d.raw, "categories", joinArray(cats))
	if err != nil {
		return nil, fmt.Errorf("set categories: %w", err)
	}
	return pretty.PrettyOptions(raw, prettyOptions), nil
}

func joinArray(elems [][]byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	buf.Write(bytes.Join(elems, []byte(",")))
	buf.WriteByte(']')
	return buf.Bytes()
}
