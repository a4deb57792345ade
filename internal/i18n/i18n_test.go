package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tr := NewTranslator()

	tests := []struct {
		name     string
		key      string
		locale   string
		expected string
	}{
		{
			name:     "english not found",
			key:      ErrKeyNotFound,
			locale:   "en",
			expected: "Not found",
		},
		{
			name:     "spanish upstream unavailable",
			key:      ErrKeyUpstreamUnavailable,
			locale:   "es",
			expected: "Los datos del catálogo no están disponibles temporalmente",
		},
		{
			name:     "portuguese rate limit",
			key:      ErrKeyRateLimitExceeded,
			locale:   "pt",
			expected: "Muitas requisições, tente novamente mais tarde",
		},
		{
			name:     "empty locale falls back to english",
			key:      ErrKeyInternalError,
			locale:   "",
			expected: "An unexpected error occurred",
		},
		{
			name:     "unknown locale falls back to english",
			key:      ErrKeyNotFound,
			locale:   "fr",
			expected: "Not found",
		},
		{
			name:     "unknown key returns key",
			key:      "error.does_not_exist",
			locale:   "en",
			expected: "error.does_not_exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tr.Translate(tt.key, tt.locale))
		})
	}
}

func TestGetLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "no header", header: "", expected: "en"},
		{name: "simple", header: "es", expected: "es"},
		{name: "region variant", header: "pt-BR", expected: "pt"},
		{name: "quality list", header: "es-ES,es;q=0.9,en;q=0.8", expected: "es"},
		{name: "unsupported", header: "de-DE,de;q=0.9", expected: "en"},
		{name: "uppercase", header: "ES", expected: "es"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/api/products", nil)
			if tt.header != "" {
				c.Request.Header.Set(AcceptLanguageHeader, tt.header)
			}
			assert.Equal(t, tt.expected, GetLocale(c))
		})
	}
}

func TestGetTranslator_Shared(t *testing.T) {
	assert.Same(t, GetTranslator(), GetTranslator())
}
