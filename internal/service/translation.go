package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/metrics"
	"github.com/guttosm/catalog-service/internal/translate"
	"github.com/rs/zerolog/log"
)

// DefaultTranslationTTL is deliberately longer than the catalog view TTLs:
// translated descriptions of static text do not go stale the way prices and
// availability do.
const DefaultTranslationTTL = 24 * time.Hour

// TranslationService caches translated item descriptions, keyed by item and
// target language, in a TTL domain independent from the main catalog cache.
// Loss of translation is degraded service, never an error: the raw text is
// always a usable answer.
type TranslationService struct {
	store      *cache.Store[string]
	provider   translate.Provider
	sourceLang string
	ttl        time.Duration
}

// NewTranslationService creates a TranslationService. sourceLang is the
// language upstream descriptions arrive in (default "en").
func NewTranslationService(store *cache.Store[string], provider translate.Provider, sourceLang string, ttl time.Duration) *TranslationService {
	if sourceLang == "" {
		sourceLang = "en"
	}
	if ttl <= 0 {
		ttl = DefaultTranslationTTL
	}
	return &TranslationService{
		store:      store,
		provider:   provider,
		sourceLang: sourceLang,
		ttl:        ttl,
	}
}

// TranslatedDescription returns rawText translated into lang. Requests for
// the source language pass through untouched without a provider call or a
// cache entry. Provider failures fall back to rawText and are not cached.
func (s *TranslationService) TranslatedDescription(ctx context.Context, itemID int, rawText, lang string) string {
	if rawText == "" || lang == "" || lang == s.sourceLang {
		return rawText
	}

	key := fmt.Sprintf("desc:%d:%s", itemID, lang)
	if cached, ok := s.store.Get(key); ok {
		metrics.RecordTranslation("hit")
		return cached
	}

	if s.provider == nil {
		return rawText
	}

	translated, err := s.provider.Translate(ctx, rawText, lang)
	if err != nil {
		metrics.RecordTranslation("fallback")
		log.Warn().
			Err(err).
			Int("item_id", itemID).
			Str("lang", lang).
			Msg("Translation failed, serving source text")
		return rawText
	}

	s.store.SetWithTTL(key, translated, s.ttl)
	metrics.RecordTranslation("success")
	return translated
}
