// Package search runs free-text catalog searches with filter criteria and
// pagination.
package search

import (
	"context"

	"github.com/gem5vision/resources-api/internal/domain"
	domsearch "github.com/gem5vision/resources-api/internal/domain/search"
)

// Service resolves pagination against configured limits and executes
// catalog searches.
type Service struct {
	repo            Repository
	defaultPageSize int
	maxPageSize     int
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{
		repo:            repo,
		defaultPageSize: domsearch.DefaultPageSize,
	}
}

// WithPagination configures page size limits. Zero leaves a limit at its
// default; maxPageSize zero means unbounded.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Search executes a validated search request. Unset pagination falls back
// to page 1 and the configured default page size; a page size over the
// configured maximum is rejected rather than clamped, so callers never get
// silently truncated pages.
func (s *Service) Search(ctx context.Context, req domsearch.Request) ([]domain.Resource, error) {
	page := req.Page()
	if page == 0 {
		page = domsearch.DefaultPage
	}
	pageSize := req.PageSize()
	if pageSize == 0 {
		pageSize = s.defaultPageSize
	}
	if s.maxPageSize > 0 && pageSize > s.maxPageSize {
		return nil, domain.BadRequestf("Page size exceeds the maximum of %d", s.maxPageSize)
	}

	resources, err := s.repo.Search(ctx, req, page, pageSize)
	if err != nil {
		return nil, err
	}
	return resources, nil
}
