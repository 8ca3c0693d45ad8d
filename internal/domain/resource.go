// Package domain holds the catalog's core types and error taxonomy.
package domain

// Catalog schema fields the API reasons about. Stored documents regularly
// carry additional fields (license, source urls, usage examples, ...);
// those pass through to responses untouched.
const (
	FieldID           = "id"
	FieldVersion      = "resource_version"
	FieldDescription  = "description"
	FieldCategory     = "category"
	FieldArchitecture = "architecture"
	FieldTags         = "tags"
	FieldGem5Versions = "gem5_versions"
)

// FieldStoreID is the store-internal identity field, hidden from every
// response.
const FieldStoreID = "_id"

// TextSearchFields are the fields a free-text search term is matched
// against, OR-combined.
var TextSearchFields = []string{
	FieldID,
	FieldDescription,
	FieldCategory,
	FieldArchitecture,
	FieldTags,
}

// Resource is a single catalog document as stored. `id` is not unique on
// its own; id + resource_version form the natural key. The raw document
// form keeps unknown fields intact between store and response.
type Resource map[string]any

// ID returns the resource id, or "" when absent or not a string.
func (r Resource) ID() string {
	s, _ := r[FieldID].(string)
	return s
}

// Version returns the resource_version string, or "" when absent or not a
// string.
func (r Resource) Version() string {
	s, _ := r[FieldVersion].(string)
	return s
}

// Without returns a copy of the resource with the given fields removed.
// The receiver is not modified.
func (r Resource) Without(fields ...string) Resource {
	out := make(Resource, len(r))
	for k, v := range r {
		out[k] = v
	}
	for _, f := range fields {
		delete(out, f)
	}
	return out
}

// ResourceKey is an exact id + resource_version pair, the natural key of a
// catalog record.
type ResourceKey struct {
	ID      string
	Version string
}
