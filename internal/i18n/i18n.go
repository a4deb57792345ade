// Package i18n provides internationalization support for the catalog service.
// It handles translation of user-facing error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: defaultMessages(),
	}
}

// GetTranslator returns the shared translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale, then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	if msg, ok := localeMessages[key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale extracts the locale from the gin context.
// Parses the Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// First entry of e.g. "es-ES,es;q=0.9,en;q=0.8".
	parts := strings.Split(acceptLang, ",")
	lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(lang)

	if _, ok := defaultMessages()[lang]; ok {
		return lang
	}
	return DefaultLocale
}

func defaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":      "Invalid request",
			"error.internal_error":       "An unexpected error occurred",
			"error.not_found":            "Not found",
			"error.upstream_unavailable": "Catalog data is temporarily unavailable",
			"error.rate_limit_exceeded":  "Too many requests, please try again later",
			"error.timeout":              "Request timeout",
			"error.validation.item_id":   "id: must be a positive integer",
		},
		"es": {
			"error.invalid_request":      "Solicitud inválida",
			"error.internal_error":       "Ocurrió un error inesperado",
			"error.not_found":            "No encontrado",
			"error.upstream_unavailable": "Los datos del catálogo no están disponibles temporalmente",
			"error.rate_limit_exceeded":  "Demasiadas solicitudes, inténtelo de nuevo más tarde",
			"error.timeout":              "Tiempo de espera agotado",
			"error.validation.item_id":   "id: debe ser un entero positivo",
		},
		"pt": {
			"error.invalid_request":      "Requisição inválida",
			"error.internal_error":       "Ocorreu um erro inesperado",
			"error.not_found":            "Não encontrado",
			"error.upstream_unavailable": "Os dados do catálogo estão temporariamente indisponíveis",
			"error.rate_limit_exceeded":  "Muitas requisições, tente novamente mais tarde",
			"error.timeout":              "Tempo limite da requisição excedido",
			"error.validation.item_id":   "id: deve ser um inteiro positivo",
		},
	}
}
