package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/domain/model"
)

// Cache keys for the derived views. A given semantic query always maps to
// exactly one key string within a process.
const (
	keyProducts = "products:fast"
	keyOffers   = "offers:fast"
)

const (
	// DefaultViewTTL is the request-time TTL for the derived views.
	DefaultViewTTL = time.Hour
	// DefaultPreloadTTL is the longer TTL used by the warm-start preload.
	DefaultPreloadTTL = 12 * time.Hour
)

// CatalogClient is the upstream surface the service consumes.
type CatalogClient interface {
	FetchPages(ctx context.Context, pages []int, pageSize int) ([]model.CatalogItem, error)
	FetchByID(ctx context.Context, id int) (model.CatalogItem, error)
}

// Config holds catalog view policy. Which pages feed each view, and with it
// which items are shown as discounted offers, is an explicit input rather
// than a property of the upstream data.
type Config struct {
	ProductPages         []int
	OfferPages           []int
	PageSize             int
	DiscountPercent      float64
	ViewTTL              time.Duration
	PreloadTTL           time.Duration
	DescriptionWordLimit int
}

// DefaultConfig returns the default catalog view policy.
func DefaultConfig() Config {
	return Config{
		ProductPages:         []int{1, 2, 3},
		OfferPages:           []int{4},
		PageSize:             40,
		DiscountPercent:      DefaultDiscountPercent,
		ViewTTL:              DefaultViewTTL,
		PreloadTTL:           DefaultPreloadTTL,
		DescriptionWordLimit: DefaultWordLimit,
	}
}

// CatalogService serves the derived catalog views from the cache,
// populating them from the upstream provider on miss.
type CatalogService struct {
	loader       *cache.Loader
	client       CatalogClient
	translations *TranslationService
	pricing      PricingStrategy
	cfg          Config
}

// NewCatalogService creates a CatalogService. Zero config fields fall back
// to the defaults.
func NewCatalogService(loader *cache.Loader, client CatalogClient, translations *TranslationService, pricing PricingStrategy, cfg Config) *CatalogService {
	def := DefaultConfig()
	if len(cfg.ProductPages) == 0 {
		cfg.ProductPages = def.ProductPages
	}
	if len(cfg.OfferPages) == 0 {
		cfg.OfferPages = def.OfferPages
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.DiscountPercent <= 0 {
		cfg.DiscountPercent = def.DiscountPercent
	}
	if cfg.ViewTTL <= 0 {
		cfg.ViewTTL = def.ViewTTL
	}
	if cfg.PreloadTTL <= 0 {
		cfg.PreloadTTL = def.PreloadTTL
	}
	if cfg.DescriptionWordLimit <= 0 {
		cfg.DescriptionWordLimit = def.DescriptionWordLimit
	}
	if pricing == nil {
		pricing = NewIDPricing()
	}

	return &CatalogService{
		loader:       loader,
		client:       client,
		translations: translations,
		pricing:      pricing,
		cfg:          cfg,
	}
}

// Products returns the products view, from cache or upstream.
func (s *CatalogService) Products(ctx context.Context) (model.ProductsView, error) {
	return cache.Fetch(ctx, s.loader, keyProducts, s.cfg.ViewTTL, s.produceProducts)
}

// Offers returns the offers view, from cache or upstream.
func (s *CatalogService) Offers(ctx context.Context) (model.OffersView, error) {
	return cache.Fetch(ctx, s.loader, keyOffers, s.cfg.ViewTTL, s.produceOffers)
}

// ItemDetail returns the detail view for one item, with its description
// translated into lang and truncated for display. The cached copy keeps the
// raw description; translation happens per request because the language
// varies per caller.
func (s *CatalogService) ItemDetail(ctx context.Context, id int, lang string) (model.ItemDetail, error) {
	key := fmt.Sprintf("product:%d", id)

	detail, err := cache.Fetch(ctx, s.loader, key, s.cfg.ViewTTL, func(ctx context.Context) (model.ItemDetail, error) {
		item, err := s.client.FetchByID(ctx, id)
		if err != nil {
			return model.ItemDetail{}, err
		}
		return BuildItemDetail(item, s.pricing, s.cachedOffers), nil
	})
	if err != nil {
		return model.ItemDetail{}, err
	}

	desc := detail.Description
	if s.translations != nil {
		desc = s.translations.TranslatedDescription(ctx, id, desc, lang)
	}
	detail.Description = TruncateWords(desc, s.cfg.DescriptionWordLimit)
	return detail, nil
}

// WarmProducts populates the products view with the preload TTL.
func (s *CatalogService) WarmProducts(ctx context.Context) error {
	_, err := cache.Fetch(ctx, s.loader, keyProducts, s.cfg.PreloadTTL, s.produceProducts)
	return err
}

// WarmOffers populates the offers view with the preload TTL.
func (s *CatalogService) WarmOffers(ctx context.Context) error {
	_, err := cache.Fetch(ctx, s.loader, keyOffers, s.cfg.PreloadTTL, s.produceOffers)
	return err
}

func (s *CatalogService) produceProducts(ctx context.Context) (model.ProductsView, error) {
	items, err := s.client.FetchPages(ctx, s.cfg.ProductPages, s.cfg.PageSize)
	if err != nil {
		return model.ProductsView{}, err
	}
	return BuildProductsView(items, s.pricing), nil
}

func (s *CatalogService) produceOffers(ctx context.Context) (model.OffersView, error) {
	items, err := s.client.FetchPages(ctx, s.cfg.OfferPages, s.cfg.PageSize)
	if err != nil {
		return model.OffersView{}, err
	}
	return BuildOffersView(items, s.pricing, s.cfg.DiscountPercent), nil
}

// cachedOffers is the read-only peek at the offers view used by the item
// detail builder. It never forces the view's computation.
func (s *CatalogService) cachedOffers() (model.OffersView, bool) {
	return cache.Peek[model.OffersView](s.loader, keyOffers)
}
