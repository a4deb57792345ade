package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: time.Second})
}

func TestClient_FetchPages(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.Equal(t, "2", r.URL.Query().Get("page_size"))

		page := r.URL.Query().Get("page")
		items := map[string][]model.CatalogItem{
			"1": {{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
			"2": {{ID: 3, Name: "C"}},
		}[page]
		_ = json.NewEncoder(w).Encode(listResponse{Results: items})
	})

	client := newTestClient(srv)
	items, err := client.FetchPages(context.Background(), []int{1, 2}, 2)
	require.NoError(t, err)

	// Flattened in page order regardless of response arrival order.
	require.Len(t, items, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{items[0].ID, items[1].ID, items[2].ID})
}

func TestClient_FetchPages_OnePageFailureFailsAll(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(listResponse{Results: []model.CatalogItem{{ID: 1}}})
	})

	client := newTestClient(srv)
	items, err := client.FetchPages(context.Background(), []int{1, 2}, 40)
	require.Error(t, err)
	assert.Nil(t, items, "no partial results")

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, 2, upErr.Page)
	assert.Equal(t, http.StatusBadGateway, upErr.Status)
}

func TestClient_FetchPages_Concurrent(t *testing.T) {
	var inFlight, maxInFlight int32

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			cur := atomic.LoadInt32(&maxInFlight)
			if n <= cur || atomic.CompareAndSwapInt32(&maxInFlight, cur, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		_ = json.NewEncoder(w).Encode(listResponse{})
	})

	client := newTestClient(srv)
	_, err := client.FetchPages(context.Background(), []int{1, 2, 3}, 40)
	require.NoError(t, err)
	assert.Greater(t, atomic.LoadInt32(&maxInFlight), int32(1), "pages must be fetched concurrently")
}

func TestClient_FetchByID(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/games/42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.CatalogItem{
			ID:             42,
			Name:           "Portal",
			Rating:         4.6,
			RatingsCount:   1200,
			DescriptionRaw: "A puzzle game.",
		})
	})

	client := newTestClient(srv)
	item, err := client.FetchByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, item.ID)
	assert.Equal(t, "Portal", item.Name)
	assert.Equal(t, "A puzzle game.", item.DescriptionRaw)
}

func TestClient_FetchByID_NotFound(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client := newTestClient(srv)
	_, err := client.FetchByID(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 999, nf.ID)
}

func TestClient_FetchByID_ServerErrorIsTransient(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(srv)
	_, err := client.FetchByID(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))

	var upErr *Error
	assert.ErrorAs(t, err, &upErr)
}

func TestClient_Timeout(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	client := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := client.FetchByID(context.Background(), 1)
	require.Error(t, err)

	var upErr *Error
	assert.ErrorAs(t, err, &upErr)
}
