package catalog

import (
	"context"

	"github.com/gem5vision/resources-api/internal/domain"
	"github.com/gem5vision/resources-api/internal/domain/search"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	findByIDFn  func(ctx context.Context, id, version string) ([]domain.Resource, error)
	findPairsFn func(ctx context.Context, keys []domain.ResourceKey) ([]domain.Resource, error)
	searchFn    func(ctx context.Context, plan search.Plan) ([]domain.Resource, error)
}

func (m *mockStore) FindByID(ctx context.Context, id, version string) ([]domain.Resource, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id, version)
	}
	return []domain.Resource{}, nil
}

func (m *mockStore) FindPairs(ctx context.Context, keys []domain.ResourceKey) ([]domain.Resource, error) {
	if m.findPairsFn != nil {
		return m.findPairsFn(ctx, keys)
	}
	return []domain.Resource{}, nil
}

func (m *mockStore) Search(ctx context.Context, plan search.Plan) ([]domain.Resource, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, plan)
	}
	return []domain.Resource{}, nil
}
