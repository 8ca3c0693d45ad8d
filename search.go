package resources

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	domsearch "github.com/gem5vision/resources-api/internal/domain/search"
)

// Filter constrains one field to a set of acceptable values. Filters are
// AND-combined across fields; values within one filter are OR-combined.
type Filter struct {
	Field  string
	Values []string
}

// SearchOptions configures a search query.
type SearchOptions struct {
	Filters  []Filter
	Page     int
	PageSize int
}

// Search executes a free-text search over the catalog. Unless a filter
// pins resource_version, each resource id collapses to its latest
// revision. A nil opts searches unfiltered with default pagination.
func (c *Catalog) Search(ctx context.Context, term string, opts *SearchOptions) ([]Resource, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	req, err := domsearch.NewRequest(
		term,
		encodeMustInclude(opts.Filters),
		pageParam(opts.Page),
		pageParam(opts.PageSize),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results, err := c.searchSvc.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromDomain(results), nil
}

// encodeMustInclude renders filters in the must-include grammar:
// field1,value1,value2;field2,value3. Field names and values must not
// contain ',' or ';', same as on the HTTP surface.
func encodeMustInclude(filters []Filter) string {
	if len(filters) == 0 {
		return ""
	}
	groups := make([]string, len(filters))
	for i, f := range filters {
		groups[i] = strings.Join(append([]string{f.Field}, f.Values...), ",")
	}
	return strings.Join(groups, ";")
}

func pageParam(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
