package middleware

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

type stubLoggingService struct {
	mu      sync.Mutex
	entries []*model.LogEntry
}

func (s *stubLoggingService) CreateLog(_ context.Context, entry *model.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubLoggingService) CreateLogs(_ context.Context, entries []*model.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *stubLoggingService) QueryLogs(context.Context, model.LogQueryOptions) ([]*model.LogEntry, error) {
	return nil, nil
}

func (s *stubLoggingService) CountLogs(context.Context, model.LogQueryOptions) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.entries)), nil
}

func (s *stubLoggingService) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func TestAsyncLogger_WritesEntries(t *testing.T) {
	svc := &stubLoggingService{}
	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 2, WriteTimeout: time.Second})
	require.NotNil(t, al)

	for i := 0; i < 5; i++ {
		assert.True(t, al.Log(&model.LogEntry{Message: "entry"}))
	}
	al.Stop()

	assert.Equal(t, 5, svc.count())
	enqueued, dropped, written, errs := al.Stats()
	assert.Equal(t, int64(5), enqueued)
	assert.Equal(t, int64(0), dropped)
	assert.Equal(t, int64(5), written)
	assert.Equal(t, int64(0), errs)
}

func TestAsyncLogger_DropsWhenFull(t *testing.T) {
	svc := &stubLoggingService{}
	// No workers, so the buffer never drains.
	al := &AsyncLogger{
		loggingService: svc,
		entryCh:        make(chan *model.LogEntry, 1),
		stopCh:         make(chan struct{}),
		writeTimeout:   time.Second,
	}

	assert.True(t, al.Log(&model.LogEntry{Message: "first"}))
	assert.False(t, al.Log(&model.LogEntry{Message: "dropped"}))

	_, dropped, _, _ := al.Stats()
	assert.Equal(t, int64(1), dropped)
}

func TestNewAsyncLogger_NilService(t *testing.T) {
	assert.Nil(t, NewAsyncLogger(nil, DefaultAsyncLoggerConfig()))
}
