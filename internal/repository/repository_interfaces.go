package repository

import (
	"context"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

// LogsRepositoryInterface defines the contract for log persistence.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

var _ LogsRepositoryInterface = (*LogsRepository)(nil)
