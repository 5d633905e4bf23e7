// Package additems appends drafted items to a menu with sequential ids.
package additems

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/amante/menutools/internal/domain"
	"github.com/amante/menutools/internal/domain/itemid"
	"github.com/amante/menutools/internal/domain/menu"
	"github.com/amante/menutools/internal/metrics"
)

// Result summarizes one run.
type Result struct {
	// Added counts appended items per category.
	Added map[string]int
	// IDs lists the issued ids in append order.
	IDs []string
	// Skipped lists draft categories missing from the menu.
	Skipped []string
}

// Total returns the number of appended items.
func (r Result) Total() int {
	return len(r.IDs)
}

// Service appends drafts to a menu file.
type Service struct {
	store    MenuStore
	domain   menu.Domain
	prefixes map[string]string
	metrics  *metrics.Run
	logger   *zap.Logger
}

// New creates a Service. prefixes maps a category id to an explicit id
// prefix; m can be nil.
func New(
	store MenuStore,
	d menu.Domain,
	prefixes map[string]string,
	m *metrics.Run,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:    store,
		domain:   d,
		prefixes: prefixes,
		metrics:  m,
		logger:   logger,
	}
}

// Run appends groups to the menu at path and writes it back in place.
// Nothing is written when no draft could be placed.
func (s *Service) Run(ctx context.Context, path string, groups []Group) (Result, error) {
	doc, err := s.store.LoadMenu(ctx, path)
	if err != nil {
		return Result{}, err
	}

	res, err := s.Append(doc, groups)
	if err != nil {
		return Result{}, err
	}
	if res.Total() == 0 {
		s.logger.Info("No items to add", zap.String("menu", path))
		return res, nil
	}

	data, err := doc.Marshal()
	if err != nil {
		return Result{}, err
	}
	if err := s.store.Save(ctx, path, data); err != nil {
		return Result{}, err
	}

	s.logger.Info("Menu updated",
		zap.String("menu", path),
		zap.Int("added", res.Total()),
		zap.Any("per_category", res.Added),
	)
	return res, nil
}

// Append adds the drafts to doc in place.
func (s *Service) Append(doc *menu.Document, groups []Group) (Result, error) {
	res := Result{Added: make(map[string]int)}
	for _, g := range groups {
		cat, ok := doc.Category(g.Category)
		if !ok {
			s.logger.Warn("Drafts skipped",
				zap.Error(fmt.Errorf("%s: %w", g.Category, domain.ErrCategoryNotFound)),
				zap.Int("drafts", len(g.Drafts)),
			)
			res.Skipped = append(res.Skipped, g.Category)
			continue
		}

		seq := s.sequence(cat)
		for _, d := range g.Drafts {
			if err := d.Validate(); err != nil {
				return Result{}, fmt.Errorf("category %s: %w", cat.ID(), err)
			}
			id := seq.Take()
			it, err := buildItem(id, cat.ID(), d)
			if err != nil {
				return Result{}, fmt.Errorf("category %s draft %q: %w", cat.ID(), d.Name, err)
			}
			cat.Append(it)
			res.Added[cat.ID()]++
			res.IDs = append(res.IDs, id)
			s.metrics.ItemAdded(cat.ID())
			s.logger.Debug("Item added", zap.String("id", id), zap.String("name", d.Name))
		}
	}
	return res, nil
}

func (s *Service) sequence(cat *menu.Category) *itemid.Sequence {
	ids := make([]string, 0, len(cat.Items))
	for _, it := range cat.Items {
		ids = append(ids, it.ID())
	}
	return itemid.NewSequence(ids, s.prefixes[cat.ID()], s.domain.String()+"-"+cat.ID())
}

type field struct {
	name  string
	value any
}

// buildItem lays out the fields in the order menus use.
func buildItem(id, category string, d Draft) (menu.Item, error) {
	it, err := menu.NewItem([]byte("{}"))
	if err != nil {
		return menu.Item{}, err
	}
	dietary := d.Dietary
	if dietary == nil {
		dietary = []string{}
	}
	fields := []field{
		{menu.FieldID, id},
		{menu.FieldName, d.Name},
		{menu.FieldDescription, d.Description},
		{menu.FieldPrice, *d.Price},
		{menu.FieldCategory, category},
		{menu.FieldDietary, dietary},
		{menu.FieldIsAvailable, true},
	}
	if d.IsChefSpecial != nil {
		fields = append(fields, field{menu.FieldIsChefSpecial, *d.IsChefSpecial})
	}
	for _, f := range fields {
		if err := it.Set(f.name, f.value); err != nil {
			return menu.Item{}, err
		}
	}
	return it, nil
}
