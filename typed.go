package resources

import (
	"context"
	"encoding/json"
	"fmt"
)

// TypedCatalog is a generic view over a Catalog that decodes schemaless
// records into T with encoding/json. T's json tags name the catalog
// fields (id, resource_version, category, ...); fields T does not declare
// are dropped.
type TypedCatalog[T any] struct {
	cat *Catalog
}

// NewTyped creates a typed view over an open catalog.
func NewTyped[T any](cat *Catalog) *TypedCatalog[T] {
	return &TypedCatalog[T]{cat: cat}
}

// Find retrieves the revisions of a resource id, decoded into T.
func (tc *TypedCatalog[T]) Find(ctx context.Context, id string, opts ...FindOption) ([]T, error) {
	records, err := tc.cat.Find(ctx, id, opts...)
	if err != nil {
		return nil, err
	}
	return decodeRecords[T](records)
}

// FindBatch resolves exact id + version pairs, decoded into T.
func (tc *TypedCatalog[T]) FindBatch(ctx context.Context, keys []Key) ([]T, error) {
	records, err := tc.cat.FindBatch(ctx, keys)
	if err != nil {
		return nil, err
	}
	return decodeRecords[T](records)
}

// Search returns a fluent search builder for this view.
func (tc *TypedCatalog[T]) Search() *SearchBuilder[T] {
	return &SearchBuilder[T]{cat: tc.cat}
}

// decodeRecords round-trips each record through encoding/json.
func decodeRecords[T any](records []Resource) ([]T, error) {
	out := make([]T, len(records))
	for i, r := range records {
		raw, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if err := json.Unmarshal(raw, &out[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return out, nil
}
