package search

import (
	"strconv"

	"github.com/gem5vision/resources-api/internal/domain"
)

// Pagination defaults, part of the HTTP contract.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Request is a validated search request. Page and page size are zero when
// the caller left them unset; the search service resolves defaults and the
// configured cap.
type Request struct {
	term     string
	criteria Criteria
	page     int
	pageSize int
}

// NewRequest validates the raw query-string inputs of a search call.
// term is required. mustInclude, page, and pageSize may be empty.
// Page and page size must parse as integers >= 1 when present: the store
// cannot execute a negative skip, so a bad value is rejected here instead
// of surfacing as an opaque store failure.
func NewRequest(term, mustInclude, page, pageSize string) (Request, error) {
	if term == "" {
		return Request{}, domain.BadRequestf("Search term (contains-str) is required")
	}

	p, err := parsePageParam(page)
	if err != nil {
		return Request{}, err
	}
	size, err := parsePageParam(pageSize)
	if err != nil {
		return Request{}, err
	}

	criteria, err := ParseMustInclude(mustInclude)
	if err != nil {
		return Request{}, err
	}

	return Request{term: term, criteria: criteria, page: p, pageSize: size}, nil
}

// Term returns the free-text search term.
func (r Request) Term() string { return r.term }

// Criteria returns the parsed must-include constraints.
func (r Request) Criteria() Criteria { return r.criteria }

// Page returns the requested page, or 0 when unset.
func (r Request) Page() int { return r.page }

// PageSize returns the requested page size, or 0 when unset.
func (r Request) PageSize() int { return r.pageSize }

// HasVersionFilter reports whether the caller constrained resource_version
// explicitly. When true, the latest-version collapse is skipped.
func (r Request) HasVersionFilter() bool {
	return r.criteria.Has(domain.FieldVersion)
}

func parsePageParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.BadRequestf("Invalid pagination parameters")
	}
	return n, nil
}
