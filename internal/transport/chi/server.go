// Package chi exposes the catalog lookup and search services over HTTP.
package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/gem5vision/resources-api/internal/domain"
	domsearch "github.com/gem5vision/resources-api/internal/domain/search"
	logpkg "github.com/gem5vision/resources-api/internal/logger"
	healthuc "github.com/gem5vision/resources-api/internal/usecase/health"
	lookupuc "github.com/gem5vision/resources-api/internal/usecase/lookup"
	searchuc "github.com/gem5vision/resources-api/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the resources API.
type Server struct {
	lookup        *lookupuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	lookup *lookupuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		lookup: lookup,
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
	}
	return s
}

// Routes registers the API endpoints. The static resource routes are
// declared alongside the {resourceID} parameter; chi matches static segments
// first, so "search" is never read as a resource id.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/resources", func(r chi.Router) {
		r.Get("/find-resource-by-id", s.FindResourceByID)
		r.Get("/find-resources-in-batch", s.FindResourcesInBatch)
		r.Get("/search", s.SearchResources)
		r.Get("/{resourceID}", s.FindResourceByPath)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// FindResourceByID handles GET /api/resources/find-resource-by-id.
// resource_id is required; resource_version optionally narrows the result
// to a single revision.
func (s *Server) FindResourceByID(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resources, err := s.lookup.Get(r.Context(), q.Get("resource_id"), q.Get("resource_version"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeResources(w, r, resources)
}

// FindResourceByPath handles GET /api/resources/{resourceID}, the path form
// of the lookup. resource_version still arrives as a query parameter.
func (s *Server) FindResourceByPath(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "resourceID")
	resources, err := s.lookup.Get(r.Context(), id, r.URL.Query().Get("resource_version"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeResources(w, r, resources)
}

// FindResourcesInBatch handles GET /api/resources/find-resources-in-batch.
// id and version repeat and pair positionally: the i-th id goes with the
// i-th version.
func (s *Server) FindResourcesInBatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resources, err := s.lookup.GetBatch(r.Context(), q["id"], q["version"])
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeResources(w, r, resources)
}

// SearchResources handles GET /api/resources/search.
func (s *Server) SearchResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := domsearch.NewRequest(
		q.Get("contains-str"),
		q.Get("must-include"),
		q.Get("page"),
		q.Get("page-size"),
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resources, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeResources(w, r, resources)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeResources renders the resource list as a relaxed extended JSON array.
// Stored documents can carry BSON-native values (dates, long integers) that
// plain encoding/json cannot represent; extended JSON keeps them readable.
func (s *Server) writeResources(w http.ResponseWriter, r *http.Request, resources []domain.Resource) {
	body, err := renderResources(resources)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// renderResources marshals each document separately; the extended JSON
// encoder only accepts top-level documents, so the array is assembled by
// hand.
func renderResources(resources []domain.Resource) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range resources {
		if i > 0 {
			buf.WriteByte(',')
		}
		doc, err := bson.MarshalExtJSON(r, false, false)
		if err != nil {
			return nil, fmt.Errorf("encode resource %q: %w", r.ID(), err)
		}
		buf.Write(doc)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel
// error. Errors wrapping a sentinel carry a message written for the client,
// so msg goes out as-is.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err, err.Error()) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
