package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	s := New[any]("test", time.Minute, time.Minute)
	t.Cleanup(s.Stop)
	return NewLoader(s)
}

func TestLoader_MissThenHit(t *testing.T) {
	l := newTestLoader(t)
	var calls int32

	produce := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "view", nil
	}

	v, err := Fetch(context.Background(), l, "products:fast", time.Hour, produce)
	require.NoError(t, err)
	assert.Equal(t, "view", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// Second call is a hit; the producer must not run again.
	v, err = Fetch(context.Background(), l, "products:fast", time.Hour, produce)
	require.NoError(t, err)
	assert.Equal(t, "view", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLoader_NoNegativeCaching(t *testing.T) {
	l := newTestLoader(t)
	var calls int32
	boom := errors.New("upstream down")

	produce := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", boom
	}

	_, err := Fetch(context.Background(), l, "offers:fast", time.Hour, produce)
	assert.ErrorIs(t, err, boom)

	// The failure was not cached: the key is absent and the next call retries.
	_, ok := l.Store().Get("offers:fast")
	assert.False(t, ok)

	_, err = Fetch(context.Background(), l, "offers:fast", time.Hour, produce)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLoader_SingleFlight(t *testing.T) {
	l := newTestLoader(t)
	var calls int32
	release := make(chan struct{})

	produce := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}

	const concurrency = 8
	var wg sync.WaitGroup
	results := make([]string, concurrency)
	errs := make([]error, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Fetch(context.Background(), l, "products:fast", time.Hour, produce)
		}(i)
	}

	// Give every goroutine a chance to join the flight before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent callers must share one producer invocation")
	for i := 0; i < concurrency; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
	}
}

func TestLoader_ProducerSurvivesCallerCancellation(t *testing.T) {
	l := newTestLoader(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := Fetch(ctx, l, "product:1", time.Hour, func(ctx context.Context) (string, error) {
		// The populate runs detached from the caller's cancellation.
		assert.NoError(t, ctx.Err())
		return "detail", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "detail", v)
}

func TestFetch_TypeMismatch(t *testing.T) {
	l := newTestLoader(t)
	l.Store().Set("product:1", 42)

	_, err := Fetch(context.Background(), l, "product:1", time.Hour, func(context.Context) (string, error) {
		return "never called", nil
	})
	assert.Error(t, err)
}

func TestPeek(t *testing.T) {
	l := newTestLoader(t)

	_, ok := Peek[string](l, "offers:fast")
	assert.False(t, ok)

	l.Store().Set("offers:fast", "view")
	v, ok := Peek[string](l, "offers:fast")
	assert.True(t, ok)
	assert.Equal(t, "view", v)

	// Wrong type reads as absent, not as a panic.
	_, ok = Peek[int](l, "offers:fast")
	assert.False(t, ok)
}
