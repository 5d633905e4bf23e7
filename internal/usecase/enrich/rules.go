package enrich

import "github.com/amante/menutools/internal/domain/menu"

// Fallback values for fields the tables cannot resolve.
const (
	FallbackCuisine      = "fusion"
	FallbackBeverageType = "other"
	FallbackTemperature  = "both"
)

// Derived tags.
const (
	TagPopular = "popular"
	TagSpicy   = "spicy"
	TagMild    = "mild"
	TagPremium = "premium"
)

// Thresholds for derived tags.
const (
	SpicyMinLevel      = 3
	MildMaxLevel       = 1
	PremiumPrice       = 1000
	PremiumBottlePrice = 15000
)

// itemTags tracks an item's tag set while rules add to it.
type itemTags struct {
	set   *menu.TagSet
	dirty bool
	added []string
}

// loadTags reads the item's tags. A missing field or a stored array with
// duplicates marks the set dirty so it is written back.
func loadTags(it *menu.Item, seed []string) *itemTags {
	if !it.Has(menu.FieldTags) {
		return &itemTags{set: menu.NewTagSet(seed...), dirty: true}
	}
	set, n := it.Tags()
	return &itemTags{set: set, dirty: n != set.Len()}
}

func (t *itemTags) add(tag string) {
	if t.set.Add(tag) {
		t.dirty = true
		t.added = append(t.added, tag)
	}
}

func (t *itemTags) merge(tags []string) {
	for _, tag := range tags {
		t.add(tag)
	}
}

func (t *itemTags) flush(it *menu.Item) error {
	if !t.dirty {
		return nil
	}
	t.dirty = false
	return it.SetTags(t.set)
}

func popular(it *menu.Item, tags *itemTags) {
	if it.Truthy(menu.FieldIsRecommended) {
		tags.add(TagPopular)
	}
}

func spice(it *menu.Item, tags *itemTags) {
	lvl, ok := it.Number(menu.FieldSpiceLevel)
	if !ok {
		return
	}
	switch {
	case lvl >= SpicyMinLevel:
		tags.add(TagSpicy)
	case lvl <= MildMaxLevel:
		tags.add(TagMild)
	}
}

func premium(it *menu.Item, tags *itemTags) {
	price, _ := it.Number(menu.FieldPrice)
	bottle, _ := it.Number(menu.FieldBottlePrice)
	if price >= PremiumPrice || bottle >= PremiumBottlePrice {
		tags.add(TagPremium)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
