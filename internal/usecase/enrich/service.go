// Package enrich fills absent descriptive fields and tags on menu items.
package enrich

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/amante/menutools/internal/domain"
	"github.com/amante/menutools/internal/domain/classification"
	"github.com/amante/menutools/internal/domain/menu"
	"github.com/amante/menutools/internal/metrics"
)

// Job is one menu to enrich.
type Job struct {
	Domain menu.Domain
	Input  string
	Output string
}

// Service runs enrichment jobs.
type Service struct {
	store   MenuStore
	mirror  Mirror
	tables  *classification.Tables
	metrics *metrics.Run
	logger  *zap.Logger
}

// New creates a Service. mirror and m can be nil.
func New(
	store MenuStore,
	mirror Mirror,
	tables *classification.Tables,
	m *metrics.Run,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:   store,
		mirror:  mirror,
		tables:  tables,
		metrics: m,
		logger:  logger,
	}
}

// Run processes jobs in order and stops at the first failure. Outputs of
// completed jobs stay written; the failing job writes nothing.
func (s *Service) Run(ctx context.Context, jobs []Job) ([]Report, error) {
	reports := make([]Report, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return reports, fmt.Errorf("enrich interrupted: %w", err)
		}

		start := time.Now()
		r, err := s.runJob(ctx, job)
		s.metrics.ObserveDocument(job.Domain.String(), err, time.Since(start))
		if err != nil {
			return reports, fmt.Errorf("enrich %s menu %s: %w", job.Domain, job.Input, err)
		}
		s.metrics.RecordEnrichment(job.Domain.String(), r.Items, r.Backfilled, r.TagsAdded)

		s.logger.Info("Menu enriched",
			zap.String("domain", job.Domain.String()),
			zap.String("output", job.Output),
			zap.Int("categories", r.Categories),
			zap.Int("items", r.Items),
			zap.Any("backfilled", r.Backfilled),
			zap.Any("tags_added", r.TagsAdded),
		)
		reports = append(reports, r)
	}
	return reports, nil
}

func (s *Service) runJob(ctx context.Context, job Job) (Report, error) {
	doc, err := s.store.LoadMenu(ctx, job.Input)
	if err != nil {
		return Report{}, err
	}

	enriched, r, err := s.Enrich(job.Domain, doc)
	if err != nil {
		return Report{}, err
	}
	r.Input, r.Output = job.Input, job.Output

	data, err := enriched.Marshal()
	if err != nil {
		return Report{}, err
	}
	if err := s.store.Save(ctx, job.Output, data); err != nil {
		return Report{}, err
	}

	if s.mirror != nil {
		if err := s.mirror.Mirror(ctx, job.Domain, data); err != nil {
			return Report{}, err
		}
	}
	return r, nil
}

// Enrich returns an enriched deep copy of doc; doc itself is not modified.
func (s *Service) Enrich(d menu.Domain, doc *menu.Document) (*menu.Document, Report, error) {
	var apply func(catID string, it *menu.Item, r *Report) error
	switch d {
	case menu.DomainFood:
		apply = s.enrichFood
	case menu.DomainBar:
		apply = s.enrichBar
	case menu.DomainCafe:
		apply = s.enrichCafe
	default:
		return nil, Report{}, fmt.Errorf("%q: %w", d, domain.ErrUnknownDomain)
	}

	out := doc.Clone()
	r := newReport(d)
	for _, cat := range out.Categories {
		r.Categories++
		for _, it := range cat.Items {
			if err := apply(cat.ID(), it, &r); err != nil {
				return nil, Report{}, fmt.Errorf("category %s item %q: %w", cat.ID(), it.ID(), err)
			}
		}
	}
	return out, r, nil
}
