package service

import (
	"fmt"
	"strings"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

const (
	// DefaultDiscountPercent is the fixed discount applied to the offers view.
	DefaultDiscountPercent = 20.0
	// DefaultWordLimit bounds description length in item detail responses.
	DefaultWordLimit = 50
	// unknownName replaces an absent upstream display name.
	unknownName = "Unknown"
	// ellipsis marks a truncated description.
	ellipsis = "..."
)

// OffersLookup reads the currently cached offers view. It must never force
// the view's computation; a miss simply reports absence.
type OffersLookup func() (model.OffersView, bool)

// BuildProductsView projects raw catalog items into the products view.
func BuildProductsView(items []model.CatalogItem, pricing PricingStrategy) model.ProductsView {
	results := make([]model.Product, len(items))
	for i, item := range items {
		results[i] = buildProduct(item, pricing)
	}
	return model.ProductsView{Results: results, Count: len(results)}
}

// BuildOffersView projects raw catalog items into the offers view with a
// fixed discount percentage. Which items count as offers is the caller's
// policy (the pages it chose to fetch), not a property of the items.
func BuildOffersView(items []model.CatalogItem, pricing PricingStrategy, discountPercent float64) model.OffersView {
	results := make([]model.Offer, len(items))
	for i, item := range items {
		product := buildProduct(item, pricing)
		results[i] = model.Offer{
			Product:         product,
			Discount:        discountPercent,
			DiscountedPrice: discountedPrice(product.Price, discountPercent),
		}
	}
	return model.OffersView{Results: results, Count: len(results)}
}

// BuildItemDetail builds the single-item view. The item inherits a discount
// when it appears in the currently cached offers view; a cache miss on the
// offers view yields discount 0.
func BuildItemDetail(item model.CatalogItem, pricing PricingStrategy, offers OffersLookup) model.ItemDetail {
	price := pricing.PriceOf(item.ID)

	discount := 0.0
	if offers != nil {
		if view, ok := offers(); ok {
			for _, offer := range view.Results {
				if offer.ID == item.ID {
					discount = offer.Discount
					break
				}
			}
		}
	}

	return model.ItemDetail{
		ID:              item.ID,
		Name:            displayName(item.Name),
		Image:           item.BackgroundImage,
		Rating:          item.Rating,
		RatingsCount:    item.RatingsCount,
		Price:           price,
		Discount:        discount,
		DiscountedPrice: discountedPrice(price, discount),
		Description:     item.DescriptionRaw,
	}
}

// TruncateWords truncates s to at most limit words, appending an ellipsis
// marker when anything was cut. Empty input yields empty output.
func TruncateWords(s string, limit int) string {
	if s == "" || limit <= 0 {
		return ""
	}
	words := strings.Fields(s)
	if len(words) <= limit {
		return s
	}
	return strings.Join(words[:limit], " ") + ellipsis
}

// FormatUSD formats an amount as a fixed 2-decimal USD display string.
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func buildProduct(item model.CatalogItem, pricing PricingStrategy) model.Product {
	return model.Product{
		ID:           item.ID,
		Name:         displayName(item.Name),
		Image:        item.BackgroundImage,
		Rating:       item.Rating,
		RatingsCount: item.RatingsCount,
		Price:        pricing.PriceOf(item.ID),
	}
}

func displayName(name string) string {
	if name == "" {
		return unknownName
	}
	return name
}

func discountedPrice(price, discountPercent float64) float64 {
	return price * (1 - discountPercent/100)
}
