package discoveryengine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/custodia-labs/gemctl/internal/core/domain"
	"github.com/custodia-labs/gemctl/internal/core/ports/driven"
	"github.com/custodia-labs/gemctl/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ResourceClient = (*Client)(nil)

// MaxRetries bounds how often a 429 answer is retried after its backoff.
const MaxRetries = 2

// Client is the REST client for the Discovery Engine management API.
// Authentication headers are attached by the HTTPDoer.
type Client struct {
	baseURL     string
	doer        driven.HTTPDoer
	rateLimiter *RateLimiter
	apiEnabled  atomic.Bool
}

// NewClient creates a client rooted at baseURL (see ResolveBaseURL).
func NewClient(baseURL string, doer driven.HTTPDoer) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		doer:        doer,
		rateLimiter: NewRateLimiter(DefaultRateLimit),
	}
	c.apiEnabled.Store(true)
	return c
}

// SetRateLimiter replaces the client's rate limiter.
func (c *Client) SetRateLimiter(r *RateLimiter) {
	if r != nil {
		c.rateLimiter = r
	}
}

// APIEnabled returns false once any call has been answered with 403.
func (c *Client) APIEnabled() bool {
	return c.apiEnabled.Load()
}

// ListCollections lists the collections of a location.
func (c *Client) ListCollections(ctx context.Context, location domain.ResourcePath) ([]domain.Collection, error) {
	return listAll[domain.Collection](ctx, c, location.String()+"/collections", "collections", nil)
}

// ListEngines lists the engines of a collection.
func (c *Client) ListEngines(ctx context.Context, collection domain.ResourcePath) ([]domain.Engine, error) {
	return listAll[domain.Engine](ctx, c, collection.String()+"/engines", "engines", nil)
}

// ListDataStores lists data stores under a location or collection.
func (c *Client) ListDataStores(ctx context.Context, parent domain.ResourcePath) ([]domain.DataStore, error) {
	return listAll[domain.DataStore](ctx, c, parent.String()+"/dataStores", "dataStores", nil)
}

// ListDocuments lists the documents of a data store branch.
func (c *Client) ListDocuments(ctx context.Context, dataStoreName, branch string) ([]domain.Document, error) {
	path := domain.BranchName(dataStoreName, branch) + "/documents"
	return listAll[domain.Document](ctx, c, path, "documents", nil)
}

// GetEngine fetches an engine by full resource name.
func (c *Client) GetEngine(ctx context.Context, name string) (*domain.Engine, error) {
	var engine domain.Engine
	if err := c.do(ctx, http.MethodGet, name, nil, nil, &engine); err != nil {
		return nil, fmt.Errorf("get engine %s: %w", name, err)
	}
	return &engine, nil
}

// GetDataStore fetches a data store by full resource name.
func (c *Client) GetDataStore(ctx context.Context, name string) (*domain.DataStore, error) {
	var ds domain.DataStore
	if err := c.do(ctx, http.MethodGet, name, nil, nil, &ds); err != nil {
		return nil, fmt.Errorf("get data store %s: %w", name, err)
	}
	return &ds, nil
}

// GetSchema fetches the default schema of a data store.
func (c *Client) GetSchema(ctx context.Context, dataStoreName string) (*domain.Schema, error) {
	var schema domain.Schema
	name := domain.SchemaName(dataStoreName)
	if err := c.do(ctx, http.MethodGet, name, nil, nil, &schema); err != nil {
		return nil, fmt.Errorf("get schema %s: %w", name, err)
	}
	return &schema, nil
}

// Exists returns true if a GET on name answers 200. A 429 counts as absent.
func (c *Client) Exists(ctx context.Context, name string) bool {
	err := c.doOnce(ctx, http.MethodGet, name, nil, nil, nil)
	if err != nil {
		logger.Debug("existence check for %s failed: %v", name, err)
		return false
	}
	return true
}

// GetOperation fetches the current state of an operation. It sends exactly
// one request; a 429 is returned as domain.ErrTransport so the poller's
// interval and deadline stay the only waits.
func (c *Client) GetOperation(ctx context.Context, name string) (*domain.Operation, error) {
	var op domain.Operation
	if err := c.doOnce(ctx, http.MethodGet, name, nil, nil, &op); err != nil {
		return nil, fmt.Errorf("get operation %s: %w", name, err)
	}
	return &op, nil
}

// CreateEngine starts engine creation under a collection.
func (c *Client) CreateEngine(
	ctx context.Context,
	collection domain.ResourcePath,
	engineID string,
	engine domain.Engine,
) (*domain.Operation, error) {
	query := url.Values{"engineId": {engineID}}
	return c.startOperation(ctx, collection.String()+"/engines", query, engine)
}

// CreateDataStore starts data store creation under a collection.
func (c *Client) CreateDataStore(
	ctx context.Context,
	collection domain.ResourcePath,
	dataStoreID string,
	ds domain.DataStore,
) (*domain.Operation, error) {
	query := url.Values{"dataStoreId": {dataStoreID}}
	return c.startOperation(ctx, collection.String()+"/dataStores", query, ds)
}

// ImportDocuments starts a documents:import into a branch.
func (c *Client) ImportDocuments(ctx context.Context, branch string, req domain.ImportRequest) (*domain.Operation, error) {
	return c.startOperation(ctx, branch+"/documents:import", nil, req)
}

// DeleteEngine deletes an engine. The returned operation is not awaited.
func (c *Client) DeleteEngine(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodDelete, name, nil, nil, nil); err != nil {
		return fmt.Errorf("delete engine %s: %w", name, err)
	}
	return nil
}

// DeleteDataStore deletes a data store. The returned operation is not awaited.
func (c *Client) DeleteDataStore(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodDelete, name, nil, nil, nil); err != nil {
		return fmt.Errorf("delete data store %s: %w", name, err)
	}
	return nil
}

func (c *Client) startOperation(ctx context.Context, path string, query url.Values, body any) (*domain.Operation, error) {
	var op domain.Operation
	if err := c.do(ctx, http.MethodPost, path, query, body, &op); err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	if op.Name == "" {
		return nil, fmt.Errorf("%w: POST %s returned no operation name", domain.ErrTransport, path)
	}
	return &op, nil
}

// listAll follows nextPageToken until exhausted and collects the items held
// under field. A 404 yields an empty list. Other errors return the items
// read so far.
func listAll[T any](ctx context.Context, c *Client, path, field string, query url.Values) ([]T, error) {
	items := []T{}
	token := ""

	for {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		if token != "" {
			q.Set("pageToken", token)
		}

		var page map[string]json.RawMessage
		if err := c.do(ctx, http.MethodGet, path, q, nil, &page); err != nil {
			if IsNotFound(err) {
				return items, nil
			}
			return items, fmt.Errorf("list %s: %w", path, err)
		}

		if raw, ok := page[field]; ok {
			var batch []T
			if err := json.Unmarshal(raw, &batch); err != nil {
				return items, fmt.Errorf("%w: decode %s: %w", domain.ErrTransport, field, err)
			}
			items = append(items, batch...)
		}

		token = ""
		if raw, ok := page["nextPageToken"]; ok {
			if err := json.Unmarshal(raw, &token); err != nil {
				return items, fmt.Errorf("%w: decode nextPageToken: %w", domain.ErrTransport, err)
			}
		}
		if token == "" {
			return items, nil
		}
		logger.Debug("fetching next page of %s", path)
	}
}

// do sends a request and decodes a 2xx JSON answer into out (when non-nil).
// 429 answers are retried after their Retry-After window.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.request(ctx, method, path, query, body, out, MaxRetries)
}

// doOnce is do without retries. A 429 does not open the backoff window.
func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.request(ctx, method, path, query, body, out, 0)
}

func (c *Client) request(ctx context.Context, method, path string, query url.Values, body, out any, retries int) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %w", domain.ErrInvalidInput, err)
		}
	}

	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	for attempt := 0; ; attempt++ {
		err := c.send(ctx, method, target, payload, out, retries > 0)
		if err == nil || !IsRateLimited(err) || attempt >= retries {
			return err
		}
		logger.Warn("rate limited on %s %s, retrying", method, path)
	}
}

func (c *Client) send(ctx context.Context, method, target string, payload []byte, out any, backoff bool) error {
	if c.rateLimiter.BackingOff() {
		logger.Debug("rate limited, waiting before %s %s", method, target)
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", domain.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	logger.Debug("%s %s", method, target)
	resp, err := c.doer.Do(req)
	if err != nil {
		if errors.Is(err, domain.ErrAuth) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, method, target, err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		if IsForbidden(err) {
			c.apiEnabled.Store(false)
		}
		var apiErr *APIError
		if backoff && errors.As(err, &apiErr) && apiErr.StatusCode() == http.StatusTooManyRequests {
			c.rateLimiter.Backoff(retryAfter(apiErr.Err.Header))
		}
		logger.Debug("%s %s: %v", method, target, err)
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode %s response: %w", domain.ErrTransport, method, err)
	}
	return nil
}
