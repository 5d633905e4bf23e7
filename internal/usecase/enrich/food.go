package enrich

import "github.com/amante/menutools/internal/domain/menu"

// enrichFood fills descriptive fields from the food tables and infers tags.
// Present fields are never touched.
func (s *Service) enrichFood(catID string, it *menu.Item, r *Report) error {
	p := s.tables.Food(catID, it.Name())
	tagsAbsent := !it.Has(menu.FieldTags)

	if err := r.fill(it, menu.FieldCuisine, orDefault(p.Cuisine, FallbackCuisine)); err != nil {
		return err
	}
	if p.Subcuisine != "" {
		if err := r.fill(it, menu.FieldSubcuisine, p.Subcuisine); err != nil {
			return err
		}
	}

	// Written now so the key lands next to cuisine; later rules update it in place.
	tags := loadTags(it, p.Tags)
	if err := tags.flush(it); err != nil {
		return err
	}

	if err := r.fill(it, menu.FieldLocalDescription, p.LocalDescription); err != nil {
		return err
	}
	if p.SimilarTo != "" {
		if err := r.fill(it, menu.FieldSimilarTo, p.SimilarTo); err != nil {
			return err
		}
	}
	if !it.Has(menu.FieldIsJainFriendly) {
		if err := r.fill(it, menu.FieldIsJainFriendly, menu.IsJainFriendly(it)); err != nil {
			return err
		}
	}

	popular(it, tags)
	spice(it, tags)

	return r.finishItem(it, tags, tagsAbsent)
}
