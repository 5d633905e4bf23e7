package menu

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/amante/menutools/internal/domain"
)

// Item is one menu record backed by its raw JSON object.
// Presence is decided on the raw object: "", false and [] all count as present.
type Item struct {
	raw []byte
}

// NewItem wraps a raw JSON object.
func NewItem(raw []byte) (Item, error) {
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return Item{}, fmt.Errorf("item is not a JSON object: %w", domain.ErrMalformedMenu)
	}
	return Item{raw: clone(raw)}, nil
}

// Raw returns the item's JSON object.
func (it *Item) Raw() []byte { return it.raw }

// Has reports whether field is present.
func (it *Item) Has(field string) bool {
	return it.get(field).Exists()
}

// String returns a string field, or "" when absent or not a string.
func (it *Item) String(field string) string {
	r := it.get(field)
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

// Number returns a numeric field and whether it holds a number.
func (it *Item) Number(field string) (float64, bool) {
	r := it.get(field)
	if r.Type != gjson.Number {
		return 0, false
	}
	return r.Num, true
}

// Truthy reports whether field holds a truthy value.
func (it *Item) Truthy(field string) bool {
	return it.get(field).Bool()
}

// Strings returns an array-of-strings field. A bare string is treated as a
// one-element array; anything else yields nil.
func (it *Item) Strings(field string) []string {
	r := it.get(field)
	switch {
	case r.IsArray():
		arr := r.Array()
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if v.Type == gjson.String {
				out = append(out, v.Str)
			}
		}
		return out
	case r.Type == gjson.String:
		return []string{r.Str}
	default:
		return nil
	}
}

// ID returns the item id.
func (it *Item) ID() string { return it.String(FieldID) }

// Name returns the item name.
func (it *Item) Name() string { return it.String(FieldName) }

// Description returns the item description.
func (it *Item) Description() string { return it.String(FieldDescription) }

// IsVeg reports whether dietary contains exactly "veg".
func (it *Item) IsVeg() bool {
	for _, d := range it.Strings(FieldDietary) {
		if d == DietaryVeg {
			return true
		}
	}
	return false
}

// Tags loads the tag set and the number of raw entries it was built from.
// The counts differ when the stored array held duplicates.
func (it *Item) Tags() (*TagSet, int) {
	tags := it.Strings(FieldTags)
	return NewTagSet(tags...), len(tags)
}

// Set writes field, replacing it in place or appending it as the last key.
// Strings are written without HTML escaping, so "&" and "<" stay literal.
func (it *Item) Set(field string, value any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode %s: %w", field, err)
	}
	raw, err := sjson.SetRawBytes(it.raw, field, bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	if err != nil {
		return fmt.Errorf("set %s: %w", field, err)
	}
	it.raw = raw
	return nil
}

// SetIfAbsent writes field only when it is missing and reports whether it did.
func (it *Item) SetIfAbsent(field string, value any) (bool, error) {
	if it.Has(field) {
		return false, nil
	}
	if err := it.Set(field, value); err != nil {
		return false, err
	}
	return true, nil
}

// SetTags serializes the set back to the tags array.
func (it *Item) SetTags(tags *TagSet) error {
	return it.Set(FieldTags, tags.Values())
}

func (it *Item) get(field string) gjson.Result {
	return gjson.GetBytes(it.raw, field)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
