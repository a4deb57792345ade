package app

import (
	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/circuitbreaker"
	"github.com/guttosm/catalog-service/internal/service"
	"github.com/guttosm/catalog-service/internal/translate"
	"github.com/guttosm/catalog-service/internal/upstream"
)

// ServiceComponents holds the catalog service graph. Every instance is
// constructed and wired here; nothing is shared through package globals.
type ServiceComponents struct {
	ViewStore              *cache.Store[any]
	TranslationStore       *cache.Store[string]
	Catalog                *service.CatalogService
	Preloader              *service.Preloader
	UpstreamCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeServices builds the cache stores, upstream client, translation
// service, and catalog service from configuration.
func InitializeServices(cfg config.Config) *ServiceComponents {
	viewStore := cache.New[any]("views", cfg.Cache.DefaultTTL, cfg.Cache.SweepInterval)
	translationStore := cache.New[string]("translations", cfg.Cache.TranslationTTL, cfg.Cache.SweepInterval)

	upstreamCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.Upstream.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.Upstream.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.Upstream.CircuitBreakerTimeout,
		Name:             "upstream-catalog",
	})

	client := upstream.NewClient(upstream.Config{
		APIKey:  cfg.Upstream.APIKey,
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	})
	guardedClient := upstream.NewClientWithCircuitBreaker(client, upstreamCB)

	var provider translate.Provider
	if cfg.Translate.BaseURL != "" {
		provider = translate.NewClient(translate.Config{
			BaseURL:    cfg.Translate.BaseURL,
			SourceLang: cfg.Translate.SourceLang,
			Timeout:    cfg.Translate.Timeout,
		})
	}
	translations := service.NewTranslationService(translationStore, provider, cfg.Translate.SourceLang, cfg.Cache.TranslationTTL)

	catalog := service.NewCatalogService(
		cache.NewLoader(viewStore),
		guardedClient,
		translations,
		nil,
		service.Config{
			ProductPages:         cfg.Catalog.ProductPages,
			OfferPages:           cfg.Catalog.OfferPages,
			PageSize:             cfg.Catalog.PageSize,
			DiscountPercent:      cfg.Catalog.DiscountPercent,
			ViewTTL:              cfg.Cache.ViewTTL,
			PreloadTTL:           cfg.Cache.PreloadTTL,
			DescriptionWordLimit: cfg.Catalog.DescriptionWordLimit,
		},
	)

	return &ServiceComponents{
		ViewStore:              viewStore,
		TranslationStore:       translationStore,
		Catalog:                catalog,
		Preloader:              service.NewPreloader(catalog),
		UpstreamCircuitBreaker: upstreamCB,
	}
}
