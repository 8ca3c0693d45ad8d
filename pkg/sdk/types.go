package sdk

// Resource is a catalog record as returned by the API. Records are
// schemaless maps; id and resource_version form the natural key.
type Resource map[string]any

// ID returns the resource id, or "" when absent or not a string.
func (r Resource) ID() string {
	s, _ := r["id"].(string)
	return s
}

// Version returns the resource_version, or "" when absent or not a string.
func (r Resource) Version() string {
	s, _ := r["resource_version"].(string)
	return s
}

// Key is an exact id + resource_version pair for batch lookups.
type Key struct {
	ID      string
	Version string
}

// SearchParams mirror the search endpoint's query parameters.
type SearchParams struct {
	// ContainsStr is the free-text search term. Required.
	ContainsStr string
	// MustInclude constrains fields with the filter grammar
	// field1,value1,value2;field2,value3. Optional.
	MustInclude string
	// Page is 1-based. Zero lets the server serve the first page.
	Page int
	// PageSize per page. Zero lets the server pick its default.
	PageSize int
}

// Health is the server health report.
type Health struct {
	Status string            `json:"status"` // "ok", "degraded", "error"
	Checks map[string]string `json:"checks"` // component -> "ok"/"error"
}
