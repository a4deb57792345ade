// Package model contains the domain models for the catalog service.
package model

// CatalogItem is the raw record returned by the upstream catalog provider.
// Items are immutable once fetched; the service only projects them into
// derived views, it never mutates them. Upstream may omit any field except
// the id, so zero values mean "absent".
type CatalogItem struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	BackgroundImage string  `json:"background_image"`
	Rating          float64 `json:"rating"`
	RatingsCount    int     `json:"ratings_count"`
	DescriptionRaw  string  `json:"description_raw"`
}

// Product is a catalog item projected into the storefront product listing,
// enriched with a price.
type Product struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Rating       float64 `json:"rating"`
	RatingsCount int     `json:"ratings_count"`
	Price        float64 `json:"price"`
}

// Offer is a product carrying a discount.
type Offer struct {
	Product
	Discount        float64 `json:"discount"`
	DiscountedPrice float64 `json:"discounted_price"`
}

// ItemDetail is the single-item view. Description holds the raw upstream
// text while the view sits in the cache; translation and truncation are
// applied per request, after the cached copy is read.
type ItemDetail struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Image           string  `json:"image"`
	Rating          float64 `json:"rating"`
	RatingsCount    int     `json:"ratings_count"`
	Price           float64 `json:"price"`
	Discount        float64 `json:"discount"`
	DiscountedPrice float64 `json:"discounted_price"`
	Description     string  `json:"description"`
}

// ProductsView is the cacheable result list for the products endpoint.
type ProductsView struct {
	Results []Product `json:"results"`
	Count   int       `json:"count"`
}

// OffersView is the cacheable result list for the offers endpoint.
type OffersView struct {
	Results []Offer `json:"results"`
	Count   int     `json:"count"`
}
