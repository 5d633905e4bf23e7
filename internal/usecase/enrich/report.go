package enrich

import "github.com/amante/menutools/internal/domain/menu"

// Report summarizes one enriched document.
type Report struct {
	Domain     menu.Domain
	Input      string
	Output     string
	Categories int
	Items      int
	// Backfilled counts absent fields filled, by field name.
	Backfilled map[string]int
	// TagsAdded counts tags added, by tag.
	TagsAdded map[string]int
}

func newReport(d menu.Domain) Report {
	return Report{
		Domain:     d,
		Backfilled: make(map[string]int),
		TagsAdded:  make(map[string]int),
	}
}

// fill sets field when absent and counts it.
func (r *Report) fill(it *menu.Item, field string, value any) error {
	set, err := it.SetIfAbsent(field, value)
	if err != nil {
		return err
	}
	if set {
		r.Backfilled[field]++
	}
	return nil
}

func (r *Report) finishItem(it *menu.Item, tags *itemTags, tagsWereAbsent bool) error {
	if tagsWereAbsent {
		r.Backfilled[menu.FieldTags]++
	}
	for _, tag := range tags.added {
		r.TagsAdded[tag]++
	}
	r.Items++
	return tags.flush(it)
}
