// Package config provides configuration management for the catalog service.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Cache     CacheConfig
	Catalog   CatalogConfig
	Translate TranslateConfig
	Database  DatabaseConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	SwaggerUser    string
	SwaggerPass    string
}

// UpstreamConfig holds catalog provider configuration. APIKey has no
// default; the service refuses to start without it.
type UpstreamConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// CacheConfig holds TTL cache configuration.
type CacheConfig struct {
	DefaultTTL     time.Duration
	SweepInterval  time.Duration
	ViewTTL        time.Duration
	PreloadTTL     time.Duration
	TranslationTTL time.Duration
}

// CatalogConfig holds view construction policy.
type CatalogConfig struct {
	ProductPages         []int
	OfferPages           []int
	PageSize             int
	DiscountPercent      float64
	DescriptionWordLimit int
	PreloadOnStart       bool
}

// TranslateConfig holds translation provider configuration. An empty
// BaseURL disables translation; descriptions are served untranslated.
type TranslateConfig struct {
	BaseURL    string
	SourceLang string
	Timeout    time.Duration
}

// DatabaseConfig holds MongoDB configuration for the request log sink.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Upstream: UpstreamConfig{
			APIKey:                         os.Getenv("UPSTREAM_API_KEY"),
			BaseURL:                        getEnv("UPSTREAM_BASE_URL", "https://api.rawg.io/api"),
			Timeout:                        getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),
			CircuitBreakerFailureThreshold: getEnvInt("UPSTREAM_CB_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("UPSTREAM_CB_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("UPSTREAM_CB_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			DefaultTTL:     getEnvDuration("CACHE_DEFAULT_TTL", time.Hour),
			SweepInterval:  getEnvDuration("CACHE_SWEEP_INTERVAL", 5*time.Minute),
			ViewTTL:        getEnvDuration("CACHE_VIEW_TTL", time.Hour),
			PreloadTTL:     getEnvDuration("CACHE_PRELOAD_TTL", 12*time.Hour),
			TranslationTTL: getEnvDuration("CACHE_TRANSLATION_TTL", 24*time.Hour),
		},
		Catalog: CatalogConfig{
			ProductPages:         parseIntSlice(getEnv("CATALOG_PRODUCT_PAGES", "1,2,3")),
			OfferPages:           parseIntSlice(getEnv("CATALOG_OFFER_PAGES", "4")),
			PageSize:             getEnvInt("CATALOG_PAGE_SIZE", 40),
			DiscountPercent:      getEnvFloat("CATALOG_DISCOUNT_PERCENT", 20),
			DescriptionWordLimit: getEnvInt("CATALOG_DESCRIPTION_WORD_LIMIT", 50),
			PreloadOnStart:       getEnvBool("CATALOG_PRELOAD_ON_START", true),
		},
		Translate: TranslateConfig{
			BaseURL:    os.Getenv("TRANSLATE_BASE_URL"),
			SourceLang: getEnv("TRANSLATE_SOURCE_LANG", "en"),
			Timeout:    getEnvDuration("TRANSLATE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "catalog_service"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
	}
}

// Validate checks that the configuration can actually run the service.
// A missing upstream API key is a hard startup failure, not a degraded mode.
func (c Config) Validate() error {
	if c.Upstream.APIKey == "" {
		return errors.New("UPSTREAM_API_KEY is required")
	}
	if c.Upstream.BaseURL == "" {
		return errors.New("UPSTREAM_BASE_URL must not be empty")
	}
	if len(c.Catalog.ProductPages) == 0 {
		return errors.New("CATALOG_PRODUCT_PAGES must name at least one page")
	}
	if len(c.Catalog.OfferPages) == 0 {
		return errors.New("CATALOG_OFFER_PAGES must name at least one page")
	}
	if c.Catalog.PageSize <= 0 {
		return errors.New("CATALOG_PAGE_SIZE must be positive")
	}
	if c.Catalog.DiscountPercent < 0 || c.Catalog.DiscountPercent > 100 {
		return errors.New("CATALOG_DISCOUNT_PERCENT must be between 0 and 100")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseIntSlice(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]int, 0, len(parts))
	for _, p := range parts {
		if v, err := strconv.Atoi(strings.TrimSpace(p)); err == nil && v > 0 {
			result = append(result, v)
		}
	}
	return result
}
