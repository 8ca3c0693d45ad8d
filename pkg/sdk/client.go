package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is a typed HTTP client for the resources API.
type Client struct {
	baseURL string
	httpc   *http.Client
	obs     *observer
}

// New creates a Client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("sdk: base URL required")
	}

	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	httpc := &http.Client{Timeout: defaultTimeout}
	if cfg.httpClient != nil {
		clone := *cfg.httpClient
		httpc = &clone
		if httpc.Timeout == 0 {
			httpc.Timeout = defaultTimeout
		}
	}
	if cfg.timeout > 0 {
		httpc.Timeout = cfg.timeout
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   httpc,
		obs:     obs,
	}, nil
}

// GetResource fetches the revisions of a resource id, in the order the
// server returns them. WithVersion narrows the result to one exact revision.
func (c *Client) GetResource(ctx context.Context, id string, opts ...GetOption) (records []Resource, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_resource", start, err) }()

	var gc getConfig
	for _, o := range opts {
		o(&gc)
	}

	q := url.Values{}
	q.Set("resource_id", id)
	if gc.version != "" {
		q.Set("resource_version", gc.version)
	}
	return c.getList(ctx, "/api/resources/find-resource-by-id", q)
}

// GetResourcesBatch resolves several exact id + version pairs in one call.
// The i-th id pairs with the i-th version; the server answers all-or-nothing.
func (c *Client) GetResourcesBatch(ctx context.Context, keys []Key) (records []Resource, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_resources_batch", start, err) }()

	q := url.Values{}
	for _, k := range keys {
		q.Add("id", k.ID)
		q.Add("version", k.Version)
	}
	return c.getList(ctx, "/api/resources/find-resources-in-batch", q)
}

// Search runs a free-text catalog search.
func (c *Client) Search(ctx context.Context, params SearchParams) (records []Resource, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	q := url.Values{}
	q.Set("contains-str", params.ContainsStr)
	if params.MustInclude != "" {
		q.Set("must-include", params.MustInclude)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		q.Set("page-size", strconv.Itoa(params.PageSize))
	}
	return c.getList(ctx, "/api/resources/search", q)
}

// HealthCheck fetches the server health report. An unhealthy server (503)
// still yields the decoded report; err covers transport and decode
// failures only.
func (c *Client) HealthCheck(ctx context.Context) (h Health, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	resp, err := c.get(ctx, "/health", nil)
	if err != nil {
		return Health{}, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return Health{}, fmt.Errorf("sdk: decode health response: %w", err)
	}
	return h, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("sdk: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sdk: %s: %w", path, err)
	}
	return resp, nil
}

func (c *Client) getList(ctx context.Context, path string, q url.Values) ([]Resource, error) {
	resp, err := c.get(ctx, path, q)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var records []Resource
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("sdk: decode response: %w", err)
	}
	return records, nil
}

// apiError turns a non-200 response into *APIError, reading the message
// from the {"error": ...} body when present.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var e struct {
		Error string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &e); err == nil {
		msg = e.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
