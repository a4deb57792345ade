package upstream

import (
	"context"
	"errors"

	"github.com/guttosm/catalog-service/internal/circuitbreaker"
	"github.com/guttosm/catalog-service/internal/domain/model"
)

// ClientWithCircuitBreaker guards the upstream provider with a circuit
// breaker. When the circuit is open, calls fail fast with a transient
// *Error so callers fall back to cached views instead of waiting out
// timeouts against a dead provider.
type ClientWithCircuitBreaker struct {
	client  *Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewClientWithCircuitBreaker wraps client with the given breaker.
func NewClientWithCircuitBreaker(client *Client, breaker *circuitbreaker.CircuitBreaker) *ClientWithCircuitBreaker {
	return &ClientWithCircuitBreaker{client: client, breaker: breaker}
}

// FetchPages fetches catalog pages through the circuit breaker.
func (c *ClientWithCircuitBreaker) FetchPages(ctx context.Context, pages []int, pageSize int) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	err := c.breaker.Execute(ctx, func() error {
		var fErr error
		items, fErr = c.client.FetchPages(ctx, pages, pageSize)
		return fErr
	})
	if err != nil {
		if err == circuitbreaker.ErrCircuitOpen {
			return nil, &Error{Endpoint: endpointList, Err: err}
		}
		return nil, err
	}
	return items, nil
}

// FetchByID fetches one catalog item through the circuit breaker.
// A not-found is a definitive answer from a healthy provider, so it does
// not count against the breaker.
func (c *ClientWithCircuitBreaker) FetchByID(ctx context.Context, id int) (model.CatalogItem, error) {
	var item model.CatalogItem
	var notFound *NotFoundError

	err := c.breaker.Execute(ctx, func() error {
		var fErr error
		item, fErr = c.client.FetchByID(ctx, id)
		if fErr != nil && errors.As(fErr, &notFound) {
			return nil
		}
		return fErr
	})
	if notFound != nil {
		return model.CatalogItem{}, notFound
	}
	if err != nil {
		if err == circuitbreaker.ErrCircuitOpen {
			return model.CatalogItem{}, &Error{Endpoint: endpointDetail, Err: err}
		}
		return model.CatalogItem{}, err
	}
	return item, nil
}

// Breaker exposes the underlying breaker for health reporting.
func (c *ClientWithCircuitBreaker) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}
