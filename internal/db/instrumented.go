package db

import (
	"context"
	"time"

	"github.com/gem5vision/resources-api/internal/domain"
	"github.com/gem5vision/resources-api/internal/domain/search"
	"github.com/gem5vision/resources-api/internal/metrics"
)

// Compile-time check: InstrumentedStore implements Store.
var _ Store = (*InstrumentedStore)(nil)

// InstrumentedStore decorates a Store with Prometheus query metrics. Ping,
// Close, and WaitForReady pass through unrecorded; only catalog queries are
// worth a time series.
type InstrumentedStore struct {
	Store
	driver string
}

// NewInstrumentedStore wraps a store. driver labels the metrics, matching
// the configured database driver name.
func NewInstrumentedStore(store Store, driver string) *InstrumentedStore {
	return &InstrumentedStore{Store: store, driver: driver}
}

func (s *InstrumentedStore) FindByID(ctx context.Context, id, version string) ([]domain.Resource, error) {
	start := time.Now()
	resources, err := s.Store.FindByID(ctx, id, version)
	s.observe("find_by_id", start, err)
	return resources, err
}

func (s *InstrumentedStore) FindPairs(ctx context.Context, keys []domain.ResourceKey) ([]domain.Resource, error) {
	start := time.Now()
	resources, err := s.Store.FindPairs(ctx, keys)
	s.observe("find_pairs", start, err)
	return resources, err
}

func (s *InstrumentedStore) Search(ctx context.Context, plan search.Plan) ([]domain.Resource, error) {
	start := time.Now()
	resources, err := s.Store.Search(ctx, plan)
	s.observe("search", start, err)
	return resources, err
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.StoreQueriesTotal.WithLabelValues(s.driver, op, status).Inc()
	metrics.StoreQueryDuration.WithLabelValues(s.driver, op).Observe(time.Since(start).Seconds())
}
