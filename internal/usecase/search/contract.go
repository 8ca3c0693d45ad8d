package search

import (
	"context"

	"github.com/gem5vision/resources-api/internal/domain"
	domsearch "github.com/gem5vision/resources-api/internal/domain/search"
)

// Repository defines the storage contract for catalog search.
type Repository interface {
	Search(ctx context.Context, req domsearch.Request, page, pageSize int) ([]domain.Resource, error)
}
