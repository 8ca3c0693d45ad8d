// Package lookup implements exact-match resource retrieval by id and by
// id+version batches.
package lookup

import (
	"context"

	"github.com/gem5vision/resources-api/internal/domain"
)

// Service handles exact-match resource lookups.
type Service struct {
	repo         Repository
	maxBatchSize int
}

// New creates a lookup service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// WithMaxBatchSize caps the number of id+version pairs per batch request.
// Zero leaves the batch unbounded.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// Get returns every stored revision of id, narrowed to one revision when
// version is non-empty. An id with no matching records is a not-found error,
// never an empty list.
func (s *Service) Get(ctx context.Context, id, version string) ([]domain.Resource, error) {
	if id == "" {
		return nil, domain.BadRequestf("Resource ID is required")
	}

	resources, err := s.repo.FindByID(ctx, id, version)
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, domain.NotFoundf("Resource with ID '%s' not found", id)
	}
	return resources, nil
}

// GetBatch resolves id+version pairs, all or nothing: ids[i] pairs with
// versions[i], and every pair must match a stored resource or the whole
// batch fails as not found.
func (s *Service) GetBatch(ctx context.Context, ids, versions []string) ([]domain.Resource, error) {
	if len(ids) == 0 || len(versions) == 0 {
		return nil, domain.BadRequestf("Both 'id' and 'version' parameters are required")
	}
	if len(ids) != len(versions) {
		return nil, domain.BadRequestf("Number of 'id' parameters must match number of 'version' parameters")
	}
	if s.maxBatchSize > 0 && len(ids) > s.maxBatchSize {
		return nil, domain.BadRequestf("Batch size exceeds the maximum of %d pairs", s.maxBatchSize)
	}

	keys := make([]domain.ResourceKey, len(ids))
	for i := range ids {
		keys[i] = domain.ResourceKey{ID: ids[i], Version: versions[i]}
	}

	resources, err := s.repo.FindBatch(ctx, keys)
	if err != nil {
		return nil, err
	}
	if len(resources) != len(keys) {
		return nil, domain.NotFoundf("One or more requested resources were not found")
	}
	return resources, nil
}
