// Package upstream implements the client for the third-party game catalog
// provider.
package upstream

import (
	"errors"
	"fmt"
)

// Error is a transient upstream failure: timeout, network error, or a
// non-2xx response. Callers may serve stale cache or retry later.
type Error struct {
	Endpoint string
	Page     int // 0 when the failure was not a list-page fetch
	Status   int // 0 when no HTTP response was received
	Err      error
}

func (e *Error) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("upstream %s page %d: status %d: %v", e.Endpoint, e.Page, e.Status, e.Err)
	}
	return fmt.Sprintf("upstream %s: status %d: %v", e.Endpoint, e.Status, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFoundError means the provider definitively reported that the id does
// not exist. Distinct from Error so callers can skip retrying.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog item %d not found", e.ID)
}

// IsNotFound reports whether err is a definitive not-found from upstream.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
