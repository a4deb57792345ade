// Package service contains the business logic for the catalog service.
package service

// PricingStrategy computes the display price for a catalog item. The
// upstream provider carries no pricing data, so the strategy is the single
// place a real pricing source would plug in.
type PricingStrategy interface {
	PriceOf(id int) float64
}

// IDPricing is the placeholder pricing policy: a base amount plus an
// id-derived offset within a fixed range. Deterministic, so a given item
// always shows the same price.
type IDPricing struct {
	Base   float64
	Spread int
}

// NewIDPricing returns the default placeholder pricing.
func NewIDPricing() IDPricing {
	return IDPricing{Base: 9.99, Spread: 50}
}

// PriceOf returns the price for the given item id.
func (p IDPricing) PriceOf(id int) float64 {
	if id < 0 {
		id = -id
	}
	spread := p.Spread
	if spread <= 0 {
		spread = 1
	}
	return p.Base + float64(id%spread)
}
