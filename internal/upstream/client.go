package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTimeout bounds every upstream request.
	DefaultTimeout = 30 * time.Second

	endpointList   = "list"
	endpointDetail = "detail"
)

// Config holds upstream client configuration. APIKey must be validated
// before the client is constructed; the service does not start without it.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client issues requests against the catalog provider's list and detail
// endpoints. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// listResponse is the provider's list envelope.
type listResponse struct {
	Results []model.CatalogItem `json:"results"`
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// FetchPages fetches the given catalog pages concurrently and returns the
// items flattened in page order. A failure on any page fails the whole call;
// there is no partial-results mode, so callers decide between serving stale
// cache and propagating the error.
func (c *Client) FetchPages(ctx context.Context, pages []int, pageSize int) ([]model.CatalogItem, error) {
	perPage := make([][]model.CatalogItem, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	for i, page := range pages {
		g.Go(func() error {
			items, err := c.fetchPage(ctx, page, pageSize)
			if err != nil {
				return err
			}
			perPage[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var items []model.CatalogItem
	for _, pageItems := range perPage {
		items = append(items, pageItems...)
	}
	return items, nil
}

// FetchByID fetches a single catalog item. A 404 from the provider maps to
// *NotFoundError; every other failure is a transient *Error.
func (c *Client) FetchByID(ctx context.Context, id int) (model.CatalogItem, error) {
	start := time.Now()

	u := fmt.Sprintf("%s/games/%d?key=%s", c.baseURL, id, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.CatalogItem{}, &Error{Endpoint: endpointDetail, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(endpointDetail, "error", time.Since(start))
		return model.CatalogItem{}, &Error{Endpoint: endpointDetail, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.RecordUpstreamRequest(endpointDetail, "not_found", time.Since(start))
		return model.CatalogItem{}, &NotFoundError{ID: id}
	}
	if resp.StatusCode != http.StatusOK {
		metrics.RecordUpstreamRequest(endpointDetail, "error", time.Since(start))
		return model.CatalogItem{}, &Error{
			Endpoint: endpointDetail,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var item model.CatalogItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		metrics.RecordUpstreamRequest(endpointDetail, "error", time.Since(start))
		return model.CatalogItem{}, &Error{Endpoint: endpointDetail, Err: err}
	}

	metrics.RecordUpstreamRequest(endpointDetail, "success", time.Since(start))
	return item, nil
}

// fetchPage fetches one list page.
func (c *Client) fetchPage(ctx context.Context, page, pageSize int) ([]model.CatalogItem, error) {
	start := time.Now()

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	u := c.baseURL + "/games?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &Error{Endpoint: endpointList, Page: page, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(endpointList, "error", time.Since(start))
		return nil, &Error{Endpoint: endpointList, Page: page, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordUpstreamRequest(endpointList, "error", time.Since(start))
		return nil, &Error{
			Endpoint: endpointList,
			Page:     page,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.RecordUpstreamRequest(endpointList, "error", time.Since(start))
		return nil, &Error{Endpoint: endpointList, Page: page, Err: err}
	}

	metrics.RecordUpstreamRequest(endpointList, "success", time.Since(start))
	return body.Results, nil
}
