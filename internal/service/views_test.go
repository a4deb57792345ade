package service

import (
	"strings"
	"testing"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDPricing_PriceOf(t *testing.T) {
	pricing := NewIDPricing()

	// Deterministic: same id, same price.
	assert.Equal(t, pricing.PriceOf(42), pricing.PriceOf(42))

	// Base plus id-derived offset within the fixed range.
	assert.Equal(t, pricing.Base, pricing.PriceOf(0))
	assert.Equal(t, pricing.Base+float64(42%pricing.Spread), pricing.PriceOf(42))
	for _, id := range []int{1, 49, 50, 51, 1000} {
		price := pricing.PriceOf(id)
		assert.GreaterOrEqual(t, price, pricing.Base)
		assert.Less(t, price, pricing.Base+float64(pricing.Spread))
	}
}

func TestBuildProductsView(t *testing.T) {
	items := []model.CatalogItem{
		{ID: 1, Name: "A", BackgroundImage: "http://img/1.jpg", Rating: 4.2, RatingsCount: 10},
		{ID: 2}, // everything absent except the id
	}
	pricing := NewIDPricing()

	view := BuildProductsView(items, pricing)

	require.Equal(t, 2, view.Count)
	require.Len(t, view.Results, 2)

	assert.Equal(t, "A", view.Results[0].Name)
	assert.Equal(t, "http://img/1.jpg", view.Results[0].Image)
	assert.Equal(t, 4.2, view.Results[0].Rating)
	assert.Equal(t, 10, view.Results[0].RatingsCount)
	assert.Equal(t, pricing.PriceOf(1), view.Results[0].Price)

	assert.Equal(t, "Unknown", view.Results[1].Name)
	assert.Zero(t, view.Results[1].Rating)
	assert.Zero(t, view.Results[1].RatingsCount)
}

func TestBuildOffersView(t *testing.T) {
	items := []model.CatalogItem{{ID: 5, Name: "B"}}
	pricing := NewIDPricing()

	view := BuildOffersView(items, pricing, 20)

	require.Equal(t, 1, view.Count)
	offer := view.Results[0]
	assert.Equal(t, 20.0, offer.Discount)
	assert.InDelta(t, offer.Price*0.8, offer.DiscountedPrice, 1e-9)
}

func TestBuildItemDetail_DiscountInheritance(t *testing.T) {
	pricing := NewIDPricing()
	offersView := BuildOffersView([]model.CatalogItem{{ID: 10, Name: "X"}}, pricing, 20)
	lookup := func() (model.OffersView, bool) { return offersView, true }

	t.Run("item present in offers inherits its discount", func(t *testing.T) {
		detail := BuildItemDetail(model.CatalogItem{ID: 10, Name: "X"}, pricing, lookup)
		assert.Equal(t, 20.0, detail.Discount)
		assert.InDelta(t, detail.Price*0.8, detail.DiscountedPrice, 1e-9)
	})

	t.Run("item absent from offers gets no discount", func(t *testing.T) {
		detail := BuildItemDetail(model.CatalogItem{ID: 11, Name: "Y"}, pricing, lookup)
		assert.Zero(t, detail.Discount)
		assert.Equal(t, detail.Price, detail.DiscountedPrice)
	})

	t.Run("offers view not cached yields no discount", func(t *testing.T) {
		miss := func() (model.OffersView, bool) { return model.OffersView{}, false }
		detail := BuildItemDetail(model.CatalogItem{ID: 10, Name: "X"}, pricing, miss)
		assert.Zero(t, detail.Discount)
	})

	t.Run("nil lookup yields no discount", func(t *testing.T) {
		detail := BuildItemDetail(model.CatalogItem{ID: 10, Name: "X"}, pricing, nil)
		assert.Zero(t, detail.Discount)
	})
}

func TestBuildItemDetail_CarriesRawDescription(t *testing.T) {
	detail := BuildItemDetail(model.CatalogItem{ID: 1, DescriptionRaw: "raw text"}, NewIDPricing(), nil)
	assert.Equal(t, "raw text", detail.Description)
	assert.Equal(t, "Unknown", detail.Name)
}

func TestTruncateWords(t *testing.T) {
	words := make([]string, 80)
	for i := range words {
		words[i] = "w"
	}
	long := strings.Join(words, " ")

	t.Run("long description is cut at the limit with a marker", func(t *testing.T) {
		out := TruncateWords(long, 50)
		assert.True(t, strings.HasSuffix(out, "..."))
		assert.Len(t, strings.Fields(strings.TrimSuffix(out, "...")), 50)
	})

	t.Run("short description is returned unchanged", func(t *testing.T) {
		short := "one two three four five six seven eight nine ten"
		assert.Equal(t, short, TruncateWords(short, 50))
	})

	t.Run("exactly at the limit is unchanged", func(t *testing.T) {
		exact := strings.Join(words[:50], " ")
		assert.Equal(t, exact, TruncateWords(exact, 50))
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Equal(t, "", TruncateWords("", 50))
	})
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$9.99", FormatUSD(9.99))
	assert.Equal(t, "$10.00", FormatUSD(10))
	assert.Equal(t, "$8.79", FormatUSD(8.792))
}
