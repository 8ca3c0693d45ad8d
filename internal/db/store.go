package db

import (
	"context"
	"time"

	"github.com/gem5vision/resources-api/internal/domain"
	"github.com/gem5vision/resources-api/internal/domain/search"
)

// Store is the main catalog store facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces (ISP).
type Store interface {
	Pinger
	Finder
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Finder provides exact-match reads over the catalog.
type Finder interface {
	// FindByID returns every stored revision of id, or only the revision
	// with the given version when version is non-empty. A missing id is an
	// empty slice, not an error.
	FindByID(ctx context.Context, id, version string) ([]domain.Resource, error)

	// FindPairs returns the resources matching any of the exact id+version
	// pairs. Pairs with no matching resource are simply absent from the
	// result; callers decide whether that is an error.
	FindPairs(ctx context.Context, keys []domain.ResourceKey) ([]domain.Resource, error)
}

// Searcher executes query plans over the catalog.
type Searcher interface {
	Search(ctx context.Context, plan search.Plan) ([]domain.Resource, error)
}
