package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/niksmo/product-categories/internal/core/domain"
	"github.com/niksmo/product-categories/internal/core/port"
)

var _ port.CatalogViewer = (*Service)(nil)

type Opt func(*Service)

// SearchEventsOpt makes the service report every evaluated view to p.
func SearchEventsOpt(p port.SearchEventsProducer) Opt {
	return func(s *Service) {
		s.searchEvents = p
	}
}

func ClockOpt(now func() time.Time) Opt {
	return func(s *Service) {
		s.now = now
	}
}

// A Service owns the enriched catalogue built from one set of fixtures.
//
// The join runs once in [New]; [Service.View] only filters.
type Service struct {
	users        []domain.User
	categories   []domain.Category
	products     []domain.EnrichedProduct
	searchEvents port.SearchEventsProducer
	now          func() time.Time
}

func New(fixtures domain.Fixtures, opts ...Opt) Service {
	s := Service{
		users:      slices.Clone(fixtures.Users),
		categories: slices.Clone(fixtures.Categories),
		products: Enrich(
			fixtures.Products, fixtures.Categories, fixtures.Users,
		),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Products returns the unfiltered enriched catalogue.
func (s Service) Products() []domain.EnrichedProduct {
	return slices.Clone(s.products)
}

func (s Service) View(
	ctx context.Context, c domain.Criteria,
) (domain.CatalogView, error) {
	const op = "Service.View"

	if err := ctx.Err(); err != nil {
		return domain.CatalogView{}, fmt.Errorf("%s: %w", op, err)
	}

	v := domain.CatalogView{
		Users:      slices.Clone(s.users),
		Categories: slices.Clone(s.categories),
		Products:   Filter(s.products, c),
		Criteria:   c,
	}

	s.reportSearch(ctx, v)
	return v, nil
}

func (s Service) reportSearch(ctx context.Context, v domain.CatalogView) {
	const op = "Service.reportSearch"

	if s.searchEvents == nil {
		return
	}

	evt := domain.SearchEvent{
		Criteria: v.Criteria,
		Results:  len(v.Products),
		At:       s.now(),
	}
	if err := s.searchEvents.ProduceSearchEvent(ctx, evt); err != nil {
		slog.Warn("failed to report search event", "op", op, "err", err)
	}
}
