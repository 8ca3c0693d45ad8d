package lookup

import (
	"context"

	"github.com/gem5vision/resources-api/internal/domain"
)

// Repository defines the storage contract for exact-match lookups.
type Repository interface {
	FindByID(ctx context.Context, id, version string) ([]domain.Resource, error)
	FindBatch(ctx context.Context, keys []domain.ResourceKey) ([]domain.Resource, error)
}
