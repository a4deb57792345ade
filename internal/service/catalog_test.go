package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalogClient serves canned pages and items, counting calls.
type fakeCatalogClient struct {
	pages      map[int][]model.CatalogItem
	items      map[int]model.CatalogItem
	pageCalls  int32
	byIDCalls  int32
	failPages  error
	failDetail error
}

func (f *fakeCatalogClient) FetchPages(_ context.Context, pages []int, _ int) ([]model.CatalogItem, error) {
	atomic.AddInt32(&f.pageCalls, 1)
	if f.failPages != nil {
		return nil, f.failPages
	}
	var out []model.CatalogItem
	for _, p := range pages {
		out = append(out, f.pages[p]...)
	}
	return out, nil
}

func (f *fakeCatalogClient) FetchByID(_ context.Context, id int) (model.CatalogItem, error) {
	atomic.AddInt32(&f.byIDCalls, 1)
	if f.failDetail != nil {
		return model.CatalogItem{}, f.failDetail
	}
	item, ok := f.items[id]
	if !ok {
		return model.CatalogItem{}, &upstream.NotFoundError{ID: id}
	}
	return item, nil
}

func newTestCatalog(t *testing.T, client CatalogClient) *CatalogService {
	t.Helper()
	store := cache.New[any]("catalog", time.Minute, time.Minute)
	t.Cleanup(store.Stop)
	return NewCatalogService(cache.NewLoader(store), client, nil, nil, DefaultConfig())
}

func TestCatalogService_Products_MissThenHit(t *testing.T) {
	client := &fakeCatalogClient{pages: map[int][]model.CatalogItem{
		1: {{ID: 1, Name: "A", Rating: 4.2, RatingsCount: 10}},
	}}
	svc := newTestCatalog(t, client)
	pricing := NewIDPricing()

	view, err := svc.Products(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, view.Count)
	assert.Equal(t, 1, view.Results[0].ID)
	assert.Equal(t, "A", view.Results[0].Name)
	assert.Equal(t, pricing.PriceOf(1), view.Results[0].Price)

	// Second call is served from cache; upstream must not be hit again.
	view, err = svc.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, view.Count)
	assert.Equal(t, int32(1), atomic.LoadInt32(&client.pageCalls))
}

func TestCatalogService_Products_UpstreamFailureNotCached(t *testing.T) {
	boom := &upstream.Error{Endpoint: "list", Page: 1, Status: 502}
	client := &fakeCatalogClient{failPages: boom}
	svc := newTestCatalog(t, client)

	_, err := svc.Products(context.Background())
	require.Error(t, err)

	// Failure was not cached; recovery on the next call works.
	client.failPages = nil
	client.pages = map[int][]model.CatalogItem{1: {{ID: 1, Name: "A"}}}
	view, err := svc.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, view.Count)
}

func TestCatalogService_ItemDetail_InheritsOfferDiscount(t *testing.T) {
	client := &fakeCatalogClient{
		pages: map[int][]model.CatalogItem{4: {{ID: 7, Name: "Deal"}}},
		items: map[int]model.CatalogItem{
			7: {ID: 7, Name: "Deal", DescriptionRaw: "On sale."},
			8: {ID: 8, Name: "Full", DescriptionRaw: "Not on sale."},
		},
	}
	svc := newTestCatalog(t, client)

	// Offers view cached first, so the detail can cross-reference it.
	_, err := svc.Offers(context.Background())
	require.NoError(t, err)

	detail, err := svc.ItemDetail(context.Background(), 7, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultDiscountPercent, detail.Discount)
	assert.InDelta(t, detail.Price*0.8, detail.DiscountedPrice, 1e-9)

	detail, err = svc.ItemDetail(context.Background(), 8, "")
	require.NoError(t, err)
	assert.Zero(t, detail.Discount)
}

func TestCatalogService_ItemDetail_DoesNotForceOffers(t *testing.T) {
	client := &fakeCatalogClient{
		items: map[int]model.CatalogItem{7: {ID: 7, Name: "Deal"}},
	}
	svc := newTestCatalog(t, client)

	detail, err := svc.ItemDetail(context.Background(), 7, "")
	require.NoError(t, err)
	assert.Zero(t, detail.Discount, "a missing offers view is absence, not a trigger")
	assert.Zero(t, atomic.LoadInt32(&client.pageCalls), "detail must not compute the offers view as a side effect")
}

func TestCatalogService_ItemDetail_NotFound(t *testing.T) {
	client := &fakeCatalogClient{items: map[int]model.CatalogItem{}}
	svc := newTestCatalog(t, client)

	_, err := svc.ItemDetail(context.Background(), 999, "")
	require.Error(t, err)
	assert.True(t, upstream.IsNotFound(err))
}

func TestCatalogService_ItemDetail_CachedPerID(t *testing.T) {
	client := &fakeCatalogClient{
		items: map[int]model.CatalogItem{7: {ID: 7, Name: "Deal"}},
	}
	svc := newTestCatalog(t, client)

	_, err := svc.ItemDetail(context.Background(), 7, "")
	require.NoError(t, err)
	_, err = svc.ItemDetail(context.Background(), 7, "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&client.byIDCalls))
}

func TestCatalogService_ItemDetail_TruncatesDescription(t *testing.T) {
	long := ""
	for i := 0; i < 80; i++ {
		long += "word "
	}
	client := &fakeCatalogClient{
		items: map[int]model.CatalogItem{1: {ID: 1, Name: "A", DescriptionRaw: long}},
	}
	store := cache.New[any]("catalog", time.Minute, time.Minute)
	t.Cleanup(store.Stop)
	cfg := DefaultConfig()
	cfg.DescriptionWordLimit = 10
	svc := NewCatalogService(cache.NewLoader(store), client, nil, nil, cfg)

	detail, err := svc.ItemDetail(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, TruncateWords(long, 10), detail.Description)
}

func TestCatalogService_Warm_PopulatesViews(t *testing.T) {
	client := &fakeCatalogClient{pages: map[int][]model.CatalogItem{
		1: {{ID: 1, Name: "A"}},
		4: {{ID: 2, Name: "B"}},
	}}
	svc := newTestCatalog(t, client)

	require.NoError(t, svc.WarmProducts(context.Background()))
	require.NoError(t, svc.WarmOffers(context.Background()))

	// Subsequent reads are hits.
	calls := atomic.LoadInt32(&client.pageCalls)
	_, err := svc.Products(context.Background())
	require.NoError(t, err)
	_, err = svc.Offers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, calls, atomic.LoadInt32(&client.pageCalls))
}
