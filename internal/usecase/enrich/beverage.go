package enrich

import "github.com/amante/menutools/internal/domain/menu"

func (s *Service) enrichBar(catID string, it *menu.Item, r *Report) error {
	p := s.tables.Bar(catID)
	tagsAbsent := !it.Has(menu.FieldTags)

	if err := r.fill(it, menu.FieldDrinkType, orDefault(p.Type, FallbackBeverageType)); err != nil {
		return err
	}

	tags := loadTags(it, nil)
	tags.merge(p.Tags)
	popular(it, tags)
	premium(it, tags)

	return r.finishItem(it, tags, tagsAbsent)
}

func (s *Service) enrichCafe(catID string, it *menu.Item, r *Report) error {
	p := s.tables.Cafe(catID)
	tagsAbsent := !it.Has(menu.FieldTags)

	if err := r.fill(it, menu.FieldBeverageType, orDefault(p.Type, FallbackBeverageType)); err != nil {
		return err
	}
	if err := r.fill(it, menu.FieldTemperature, orDefault(p.Temperature, FallbackTemperature)); err != nil {
		return err
	}

	tags := loadTags(it, nil)
	tags.merge(p.Tags)
	popular(it, tags)
	premium(it, tags)

	return r.finishItem(it, tags, tagsAbsent)
}
