package resources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gem5vision/resources-api/internal/db"
	dbMemory "github.com/gem5vision/resources-api/internal/db/memory"
	dbMongo "github.com/gem5vision/resources-api/internal/db/mongo"
	"github.com/gem5vision/resources-api/internal/domain"
	catalogrepo "github.com/gem5vision/resources-api/internal/repository/catalog"
	lookupuc "github.com/gem5vision/resources-api/internal/usecase/lookup"
	searchuc "github.com/gem5vision/resources-api/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound       = domain.ErrNotFound
	ErrInvalidRequest = domain.ErrInvalidRequest
)

// Resource is a single catalog record. Records are schemaless; id plus
// resource_version form the natural key, everything else passes through
// as stored.
type Resource map[string]any

// Key is an exact id + resource_version pair.
type Key struct {
	ID      string
	Version string
}

// Catalog is the embedded entry point: lookups and searches run directly
// against a catalog store, without the HTTP layer in between.
type Catalog struct {
	store     db.Store
	lookupSvc *lookupuc.Service
	searchSvc *searchuc.Service
}

// Open creates a Catalog and connects to the configured store.
func Open(opts ...Option) (*Catalog, error) {
	cfg := &catalogConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("resources: store required (use WithMongo, WithMemory, or WithRecords)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	readiness := cfg.readiness
	if readiness <= 0 {
		readiness = defaultReadinessTimeout
	}
	ctx := context.Background()
	if err := store.WaitForReady(ctx, readiness); err != nil {
		store.Close()
		return nil, fmt.Errorf("resources: store not ready: %w", err)
	}

	return wireCatalog(store, cfg), nil
}

func createStore(cfg *catalogConfig) (db.Store, error) {
	switch cfg.driver {
	case "mongo":
		s, err := dbMongo.NewStore(dbMongo.Config{
			URI:          cfg.uri,
			Database:     cfg.database,
			Collection:   cfg.collection,
			QueryTimeout: cfg.queryTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("resources: create mongo store: %w", err)
		}
		return s, nil
	case "memory":
		s, err := dbMemory.NewStore(dbMemory.Config{
			CatalogPath: cfg.catalogPath,
		})
		if err != nil {
			return nil, fmt.Errorf("resources: create memory store: %w", err)
		}
		return s, nil
	case "records":
		return dbMemory.NewStoreFromResources(toDomain(cfg.records)), nil
	default:
		return nil, fmt.Errorf("resources: unknown driver %q", cfg.driver)
	}
}

func wireCatalog(store db.Store, cfg *catalogConfig) *Catalog {
	repo := catalogrepo.New(store)

	lookupSvc := lookupuc.New(repo)
	if cfg.maxBatchSize > 0 {
		lookupSvc = lookupSvc.WithMaxBatchSize(cfg.maxBatchSize)
	}
	searchSvc := searchuc.New(repo)
	if cfg.defaultPageSize > 0 || cfg.maxPageSize > 0 {
		searchSvc = searchSvc.WithPagination(cfg.defaultPageSize, cfg.maxPageSize)
	}

	return &Catalog{
		store:     store,
		lookupSvc: lookupSvc,
		searchSvc: searchSvc,
	}
}

// Close releases the store connection.
func (c *Catalog) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Catalog) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Find returns every revision of the resource id, or the single revision
// pinned with WithVersion. Returns ErrNotFound when nothing matches.
func (c *Catalog) Find(ctx context.Context, id string, opts ...FindOption) ([]Resource, error) {
	var fc findConfig
	for _, o := range opts {
		o(&fc)
	}

	records, err := c.lookupSvc.Get(ctx, id, fc.version)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	return fromDomain(records), nil
}

// FindBatch resolves several exact id + version pairs in one call. All
// pairs must exist; a single miss returns ErrNotFound.
func (c *Catalog) FindBatch(ctx context.Context, keys []Key) ([]Resource, error) {
	ids := make([]string, len(keys))
	versions := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k.ID
		versions[i] = k.Version
	}

	records, err := c.lookupSvc.GetBatch(ctx, ids, versions)
	if err != nil {
		return nil, fmt.Errorf("find batch: %w", err)
	}
	return fromDomain(records), nil
}

func fromDomain(records []domain.Resource) []Resource {
	out := make([]Resource, len(records))
	for i, r := range records {
		out[i] = Resource(r)
	}
	return out
}

func toDomain(records []Resource) []domain.Resource {
	out := make([]domain.Resource, len(records))
	for i, r := range records {
		out[i] = domain.Resource(r)
	}
	return out
}
