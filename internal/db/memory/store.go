// Package memory implements db.Store over an in-process resource catalog
// loaded from a JSON file. It serves local development and tests, and any
// deployment small enough to ship its catalog as a file.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gem5vision/resources-api/internal/db"
	"github.com/gem5vision/resources-api/internal/domain"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds parameters for a file-backed catalog store.
type Config struct {
	// CatalogPath points at a JSON array of resource records.
	CatalogPath string
}

// Store implements db.Store over an immutable in-memory record slice.
type Store struct {
	resources []domain.Resource
}

// NewStore loads the catalog file. Records keep the order of the file, which
// is the store order exact-match reads return.
func NewStore(cfg Config) (*Store, error) {
	if cfg.CatalogPath == "" {
		return nil, fmt.Errorf("catalog path is required")
	}

	data, err := os.ReadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var resources []domain.Resource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	return NewStoreFromResources(resources), nil
}

// NewStoreFromResources builds a store directly from records.
func NewStoreFromResources(resources []domain.Resource) *Store {
	rows := make([]domain.Resource, len(resources))
	copy(rows, resources)
	return &Store{resources: rows}
}

// Ping reports readiness; an in-process store only fails with its context.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close releases nothing; the catalog lives on the heap.
func (s *Store) Close() {}

// WaitForReady returns immediately; the catalog is loaded at construction.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return ctx.Err()
}

// FindByID returns the stored revisions of id in store order, narrowed to
// one revision when version is non-empty.
func (s *Store) FindByID(ctx context.Context, id, version string) ([]domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := []domain.Resource{}
	for _, r := range s.resources {
		if r.ID() != id {
			continue
		}
		if version != "" && r.Version() != version {
			continue
		}
		out = append(out, r.Without(domain.FieldStoreID))
	}
	return out, nil
}

// FindPairs returns resources matching any exact id+version pair, in store
// order.
func (s *Store) FindPairs(ctx context.Context, keys []domain.ResourceKey) ([]domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wanted := make(map[domain.ResourceKey]struct{}, len(keys))
	for _, k := range keys {
		wanted[k] = struct{}{}
	}

	out := []domain.Resource{}
	for _, r := range s.resources {
		if _, ok := wanted[domain.ResourceKey{ID: r.ID(), Version: r.Version()}]; ok {
			out = append(out, r.Without(domain.FieldStoreID))
		}
	}
	return out, nil
}

func (s *Store) snapshot() []domain.Resource {
	rows := make([]domain.Resource, len(s.resources))
	copy(rows, s.resources)
	return rows
}
