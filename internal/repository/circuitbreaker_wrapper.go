package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/catalog-service/internal/circuitbreaker"
	"github.com/guttosm/catalog-service/internal/domain/model"
)

// LogsRepositoryWithCircuitBreaker wraps a logs repository with a circuit
// breaker. Writes are best-effort: when the circuit is open they are dropped
// instead of slowing down request handling.
type LogsRepositoryWithCircuitBreaker struct {
	repo    LogsRepositoryInterface
	breaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with the given breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, breaker *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, breaker: breaker}
}

// Create inserts a log entry unless the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	err := r.breaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		log.Debug().Msg("Log write skipped, circuit open")
		return nil
	}
	return err
}

// CreateMany inserts a batch of log entries unless the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	err := r.breaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		log.Debug().Int("dropped", len(entries)).Msg("Log batch skipped, circuit open")
		return nil
	}
	return err
}

// Query retrieves log entries. Reads are not best-effort; an open circuit
// surfaces as an error.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error) {
	var entries []*model.LogEntry
	err := r.breaker.Execute(ctx, func() error {
		var qErr error
		entries, qErr = r.repo.Query(ctx, opts)
		return qErr
	})
	return entries, err
}

// Count returns the number of matching log entries.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	var count int64
	err := r.breaker.Execute(ctx, func() error {
		var cErr error
		count, cErr = r.repo.Count(ctx, opts)
		return cErr
	})
	return count, err
}

// Breaker exposes the underlying breaker for health reporting.
func (r *LogsRepositoryWithCircuitBreaker) Breaker() *circuitbreaker.CircuitBreaker {
	return r.breaker
}

var _ LogsRepositoryInterface = (*LogsRepositoryWithCircuitBreaker)(nil)
