// Package catalog is the repository over the resource catalog store.
package catalog

import (
	"context"
	"fmt"

	"github.com/gem5vision/resources-api/internal/domain"
	"github.com/gem5vision/resources-api/internal/domain/search"
)

// store is the consumer interface for catalog reads (ISP).
type store interface {
	FindByID(ctx context.Context, id, version string) ([]domain.Resource, error)
	FindPairs(ctx context.Context, keys []domain.ResourceKey) ([]domain.Resource, error)
	Search(ctx context.Context, plan search.Plan) ([]domain.Resource, error)
}

// Repo implements the lookup and search repositories.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// FindByID returns the stored revisions of id, narrowed to one revision when
// version is non-empty. A missing id is an empty slice, not an error.
func (r *Repo) FindByID(ctx context.Context, id, version string) ([]domain.Resource, error) {
	resources, err := r.store.FindByID(ctx, id, version)
	if err != nil {
		return nil, fmt.Errorf("find resource %s: %w", id, err)
	}
	return resources, nil
}

// FindBatch returns the resources matching the exact id+version pairs.
// Missing pairs are absent from the result.
func (r *Repo) FindBatch(ctx context.Context, keys []domain.ResourceKey) ([]domain.Resource, error) {
	resources, err := r.store.FindPairs(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("find %d resources in batch: %w", len(keys), err)
	}
	return resources, nil
}

// Search builds the query plan for a validated request and resolved
// pagination, then executes it.
func (r *Repo) Search(ctx context.Context, req search.Request, page, pageSize int) ([]domain.Resource, error) {
	plan := search.BuildPlan(req.Term(), req.Criteria(), page, pageSize)

	resources, err := r.store.Search(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", req.Term(), err)
	}
	return resources, nil
}
