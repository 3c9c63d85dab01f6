package port

import (
	"context"

	"github.com/niksmo/product-categories/internal/core/domain"
)

type closer interface {
	Close()
}

type CatalogViewer interface {
	View(context.Context, domain.Criteria) (domain.CatalogView, error)
}

type FixturesLoader interface {
	LoadFixtures(context.Context) (domain.Fixtures, error)
}

type SearchEventsProducer interface {
	ProduceSearchEvent(context.Context, domain.SearchEvent) error
	closer
}
