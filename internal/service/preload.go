package service

import (
	"context"
	"time"

	"github.com/guttosm/catalog-service/internal/metrics"
	"github.com/rs/zerolog/log"
)

// DefaultPreloadTimeout bounds the whole warm-start run.
const DefaultPreloadTimeout = 2 * time.Minute

// Preloader warms the two hot views at process start so the first real user
// requests hit a populated cache. Preload is an optimization, not a
// readiness gate: failures are logged and never block startup.
type Preloader struct {
	catalog *CatalogService
	timeout time.Duration
}

// NewPreloader creates a Preloader for the given catalog service.
func NewPreloader(catalog *CatalogService) *Preloader {
	return &Preloader{catalog: catalog, timeout: DefaultPreloadTimeout}
}

// Run sequentially populates the products and offers views with the preload
// TTL, logging each outcome.
func (p *Preloader) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	warmups := []struct {
		view string
		warm func(context.Context) error
	}{
		{"products", p.catalog.WarmProducts},
		{"offers", p.catalog.WarmOffers},
	}

	for _, w := range warmups {
		start := time.Now()
		if err := w.warm(ctx); err != nil {
			metrics.RecordPreload(w.view, "error")
			log.Warn().
				Err(err).
				Str("view", w.view).
				Msg("Warm-start preload failed, view will populate on first request")
			continue
		}
		metrics.RecordPreload(w.view, "success")
		log.Info().
			Str("view", w.view).
			Dur("duration", time.Since(start)).
			Msg("Warm-start preload complete")
	}
}
