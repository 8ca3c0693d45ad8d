package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gem5vision/resources-api/internal/db/memory"
	"github.com/gem5vision/resources-api/internal/domain"
	"github.com/gem5vision/resources-api/internal/repository/catalog"
	healthuc "github.com/gem5vision/resources-api/internal/usecase/health"
	lookupuc "github.com/gem5vision/resources-api/internal/usecase/lookup"
	searchuc "github.com/gem5vision/resources-api/internal/usecase/search"
)

func fixtureResources() []domain.Resource {
	return []domain.Resource{
		{
			"_id":              "65f0a1",
			"id":               "riscv-boot",
			"resource_version": "1.0.0",
			"description":      "RISCV full system boot disk",
			"category":         "diskimage",
			"architecture":     "RISCV",
			"tags":             []any{"boot", "fullsystem"},
			"gem5_versions":    []any{"22.1", "23.0"},
		},
		{
			"_id":              "65f0a2",
			"id":               "riscv-boot",
			"resource_version": "2.2.0",
			"description":      "RISCV full system boot disk",
			"category":         "diskimage",
			"architecture":     "RISCV",
			"tags":             []any{"boot", "fullsystem"},
			"gem5_versions":    []any{"23.0"},
		},
		{
			"_id":              "65f0a3",
			"id":               "riscv-boot",
			"resource_version": "2.10.0",
			"description":      "RISCV full system boot disk",
			"category":         "diskimage",
			"architecture":     "RISCV",
			"tags":             []any{"boot", "fullsystem"},
			"gem5_versions":    []any{"23.0", "23.1"},
		},
		{
			"_id":              "65f0a4",
			"id":               "x86-ubuntu",
			"resource_version": "1.0.0",
			"description":      "Ubuntu 22.04 boot image",
			"category":         "diskimage",
			"architecture":     "X86",
			"tags":             []any{"boot", "ubuntu"},
			"gem5_versions":    []any{"23.0"},
		},
		{
			"_id":              "65f0a5",
			"id":               "arm-hello",
			"resource_version": "1.0.0",
			"description":      "ARM hello world binary",
			"category":         "binary",
			"architecture":     "ARM",
			"tags":             []any{"hello"},
			"gem5_versions":    []any{"22.1"},
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStoreFromResources(fixtureResources())
	repo := catalog.New(store)
	srv := NewServer(
		lookupuc.New(repo),
		searchuc.New(repo),
		healthuc.New(store),
		zap.NewNop(),
	)

	r := chi.NewRouter()
	srv.Routes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, []byte) {
	t.Helper()

	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") && path != "/metrics" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	return resp.StatusCode, body
}

func decodeList(t *testing.T, body []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode list %s: %v", body, err)
	}
	return out
}

func decodeError(t *testing.T, body []byte) string {
	t.Helper()
	var out map[string]string
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode error body %s: %v", body, err)
	}
	if len(out) != 1 {
		t.Errorf("error body has %d keys, want exactly {\"error\": ...}", len(out))
	}
	return out["error"]
}

// --- find-resource-by-id ---

func TestFindResourceByID_AllVersions(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/api/resources/find-resource-by-id?resource_id=riscv-boot")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, body)
	}
	list := decodeList(t, body)
	if len(list) != 3 {
		t.Fatalf("got %d resources, want 3", len(list))
	}
	for _, item := range list {
		if _, ok := item["_id"]; ok {
			t.Error("response leaks the store id field")
		}
	}
}

func TestFindResourceByID_WithVersion(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts,
		"/api/resources/find-resource-by-id?resource_id=riscv-boot&resource_version=2.2.0")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, body)
	}
	list := decodeList(t, body)
	if len(list) != 1 {
		t.Fatalf("got %d resources, want 1", len(list))
	}
	if v := list[0]["resource_version"]; v != "2.2.0" {
		t.Errorf("resource_version = %v, want 2.2.0", v)
	}
}

func TestFindResourceByID_MissingID(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/api/resources/find-resource-by-id")
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", status, body)
	}
	if msg := decodeError(t, body); msg != "Resource ID is required" {
		t.Errorf("error = %q", msg)
	}
}

func TestFindResourceByID_NotFound(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts,
		"/api/resources/find-resource-by-id?resource_id=non-existent-resource")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", status, body)
	}
	if msg := decodeError(t, body); msg != "Resource with ID 'non-existent-resource' not found" {
		t.Errorf("error = %q", msg)
	}
}

func TestFindResourceByID_VersionMismatchIsNotFound(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts,
		"/api/resources/find-resource-by-id?resource_id=riscv-boot&resource_version=9.9.9")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", status, body)
	}
}

// --- path form ---

func TestFindResourceByPath(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/api/resources/riscv-boot")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, body)
	}
	if list := decodeList(t, body); len(list) != 3 {
		t.Fatalf("got %d resources, want 3", len(list))
	}
}

func TestFindResourceByPath_WithVersion(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/api/resources/arm-hello?resource_version=1.0.0")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, body)
	}
	list := decodeList(t, body)
	if len(list) != 1 || list[0]["id"] != "arm-hello" {
		t.Fatalf("unexpected result: %s", body)
	}
}

// --- find-resources-in-batch ---

func TestFindResourcesInBatch(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts,
		"/api/resources/find-resources-in-batch?id=riscv-boot&id=arm-hello&version=2.2.0&version=1.0.0")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, body)
	}
	list := decodeList(t, body)
	if len(list) != 2 {
		t.Fatalf("got %d resources, want 2", len(list))
	}
}

func TestFindResourcesInBatch_MissingParams(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/api/resources/find-resources-in-batch?id=riscv-boot")
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", status, body)
	}
	if msg := decodeError(t, body); msg != "Both 'id' and 'version' parameters are required" {
		t.Errorf("error = %q", msg)
	}
}

func TestFindResourcesInBatch_CountMismatch(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts,
		"/api/resources/find-resources-in-batch?id=a&id=b&version=1.0.0")
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", status, body)
	}
	want := "Number of 'id' parameters must match number of 'version' parameters"
	if msg := decodeError(t, body); msg != want {
		t.Errorf("error = %q", msg)
	}
}

func TestFindResourcesInBatch_AllOrNothing(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts,
		"/api/resources/find-resources-in-batch?id=riscv-boot&id=ghost&version=2.2.0&version=1.0.0")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", status, body)
	}
	if msg := decodeError(t, body); msg != "One or more requested resources were not found" {
		t.Errorf("error = %q", msg)
	}
}

// --- search ---

func searchPath(params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return "/api/resources/search?" + q.Encode()
}

func TestSearch_RequiresTerm(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/api/resources/search")
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", status, body)
	}
	if msg := decodeError(t, body); msg != "Search term (contains-str) is required" {
		t.Errorf("error = %q", msg)
	}
}

func TestSearch_ReturnsLatestVersionOnly(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, searchPath(map[string]string{"contains-str": "riscv-boot"}))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, body)
	}
	list := decodeList(t, body)
	if len(list) != 1 {
		t.Fatalf("got %d resources, want 1", len(list))
	}
	if v := list[0]["resource_version"]; v != "2.10.0" {
		t.Errorf("resource_version = %v, want 2.10.0 (numeric ordering)", v)
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	ts := newTestServer(t)

	_, lower := get(t, ts, searchPath(map[string]string{"contains-str": "ubuntu"}))
	_, upper := get(t, ts, searchPath(map[string]string{"contains-str": "UBUNTU"}))

	if len(decodeList(t, lower)) != len(decodeList(t, upper)) {
		t.Error("search term casing changed the result set")
	}
	if len(decodeList(t, lower)) == 0 {
		t.Error("search matched nothing")
	}
}

func TestSearch_MustIncludeFilters(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, searchPath(map[string]string{
		"contains-str": "boot",
		"must-include": "architecture,X86",
	}))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, body)
	}
	list := decodeList(t, body)
	if len(list) != 1 || list[0]["id"] != "x86-ubuntu" {
		t.Fatalf("unexpected result: %s", body)
	}
}

func TestSearch_VersionFilterReturnsThatVersion(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, searchPath(map[string]string{
		"contains-str": "riscv-boot",
		"must-include": "resource_version,1.0.0",
	}))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, body)
	}
	list := decodeList(t, body)
	if len(list) != 1 {
		t.Fatalf("got %d resources, want 1", len(list))
	}
	if v := list[0]["resource_version"]; v != "1.0.0" {
		t.Errorf("resource_version = %v, want 1.0.0", v)
	}
}

func TestSearch_InvalidFilterFormat(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, searchPath(map[string]string{
		"contains-str": "boot",
		"must-include": "architecture",
	}))
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", status, body)
	}
	if msg := decodeError(t, body); msg != "Invalid filter format" {
		t.Errorf("error = %q", msg)
	}
}

func TestSearch_InvalidPagination(t *testing.T) {
	tests := []struct {
		name string
		page string
		size string
	}{
		{"non-integer page", "abc", ""},
		{"zero page", "0", ""},
		{"negative page-size", "", "-5"},
	}

	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := map[string]string{"contains-str": "boot"}
			if tt.page != "" {
				params["page"] = tt.page
			}
			if tt.size != "" {
				params["page-size"] = tt.size
			}

			status, body := get(t, ts, searchPath(params))
			if status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", status, body)
			}
			if msg := decodeError(t, body); msg != "Invalid pagination parameters" {
				t.Errorf("error = %q", msg)
			}
		})
	}
}

func TestSearch_PagesAreDisjoint(t *testing.T) {
	ts := newTestServer(t)

	_, first := get(t, ts, searchPath(map[string]string{
		"contains-str": "boot", "page": "1", "page-size": "1",
	}))
	_, second := get(t, ts, searchPath(map[string]string{
		"contains-str": "boot", "page": "2", "page-size": "1",
	}))

	p1, p2 := decodeList(t, first), decodeList(t, second)
	if len(p1) != 1 || len(p2) != 1 {
		t.Fatalf("page sizes = %d, %d; want 1, 1", len(p1), len(p2))
	}
	if p1[0]["id"] == p2[0]["id"] {
		t.Errorf("pages overlap on id %v", p1[0]["id"])
	}
}

func TestSearch_EmptyResultIsEmptyArray(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, searchPath(map[string]string{"contains-str": "zzzz-no-match"}))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, body)
	}
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

// --- health and metrics ---

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/health")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, body)
	}
	var resp healthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if resp.Status != "ok" || resp.Checks["database"] != "ok" {
		t.Errorf("health = %+v", resp)
	}
}

func TestHealth_StoreDown(t *testing.T) {
	repo := catalog.New(memory.NewStoreFromResources(nil))
	srv := NewServer(
		lookupuc.New(repo),
		searchuc.New(repo),
		healthuc.New(failingPinger{}),
		zap.NewNop(),
	)
	r := chi.NewRouter()
	srv.Routes(r)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	status, body := get(t, ts, "/health")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503: %s", status, body)
	}
}

func TestMetrics(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(body) == 0 {
		t.Error("metrics body is empty")
	}
}

// --- internal errors ---

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("down") }

type failingRepo struct{}

func (failingRepo) FindByID(context.Context, string, string) ([]domain.Resource, error) {
	return nil, errors.New("socket closed: internal hostnames leak here")
}

func (failingRepo) FindBatch(context.Context, []domain.ResourceKey) ([]domain.Resource, error) {
	return nil, errors.New("socket closed")
}

func TestInternalErrorIsOpaque(t *testing.T) {
	srv := NewServer(
		lookupuc.New(failingRepo{}),
		nil,
		nil,
		zap.NewNop(),
	)
	r := chi.NewRouter()
	srv.Routes(r)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	status, body := get(t, ts, "/api/resources/find-resource-by-id?resource_id=riscv-boot")
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500: %s", status, body)
	}
	if msg := decodeError(t, body); msg != "Internal server error" {
		t.Errorf("error = %q; internal details must not reach clients", msg)
	}
}
