// Package http provides the gin transport layer for the catalog service.
package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/upstream"
)

// CatalogProvider is the service surface the handlers consume.
type CatalogProvider interface {
	Products(ctx context.Context) (model.ProductsView, error)
	Offers(ctx context.Context) (model.OffersView, error)
	ItemDetail(ctx context.Context, id int, lang string) (model.ItemDetail, error)
}

// Handler provides HTTP handlers for the catalog routes.
type Handler struct {
	catalog     CatalogProvider
	cacheMaxAge time.Duration
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithCacheMaxAge sets the max-age advertised in Cache-Control headers.
// It should track the server-side view TTL.
func WithCacheMaxAge(maxAge time.Duration) HandlerOption {
	return func(h *Handler) {
		h.cacheMaxAge = maxAge
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(catalog CatalogProvider, opts ...HandlerOption) *Handler {
	h := &Handler{
		catalog:     catalog,
		cacheMaxAge: time.Hour,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Products handles the products list endpoint.
// @Summary     List products
// @Description Returns the product catalog with display names and prices. Served from cache when warm; on upstream failure responds 502 with an empty result set and an error flag.
// @Tags        Catalog
// @Produce     json
// @Success     200 {object} model.ProductsView "Product catalog"
// @Failure     502 {object} dto.DegradedListResponse "Upstream unavailable"
// @Router      /api/products [get]
func (h *Handler) Products(c *gin.Context) {
	rb := NewResponseBuilder(c)

	view, err := h.catalog.Products(c.Request.Context())
	if err != nil {
		rb.DegradedList(http.StatusBadGateway, err)
		return
	}

	rb.OK(h.cacheMaxAge, view)
}

// Offers handles the discounted offers endpoint.
// @Summary     List offers
// @Description Returns the discounted offers view. Served from cache when warm; on upstream failure responds 502 with an empty result set and an error flag.
// @Tags        Catalog
// @Produce     json
// @Success     200 {object} model.OffersView "Discounted offers"
// @Failure     502 {object} dto.DegradedListResponse "Upstream unavailable"
// @Router      /api/offers [get]
func (h *Handler) Offers(c *gin.Context) {
	rb := NewResponseBuilder(c)

	view, err := h.catalog.Offers(c.Request.Context())
	if err != nil {
		rb.DegradedList(http.StatusBadGateway, err)
		return
	}

	rb.OK(h.cacheMaxAge, view)
}

// ProductByID handles the item detail endpoint.
// @Summary     Get product detail
// @Description Returns one product with pricing, any standing discount, and a description translated to the requested language and truncated for display.
// @Tags        Catalog
// @Produce     json
// @Param       id   path  int    true  "Catalog item ID"
// @Param       lang query string false "Target language for the description (e.g. es)"
// @Success     200 {object} model.ItemDetail "Product detail"
// @Failure     400 {object} dto.ErrorResponse "Invalid item ID"
// @Failure     404 {object} dto.ErrorResponse "Unknown item"
// @Failure     502 {object} dto.ErrorResponse "Upstream unavailable"
// @Router      /api/products/{id} [get]
func (h *Handler) ProductByID(c *gin.Context) {
	rb := NewResponseBuilder(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		rb.Error(http.StatusBadRequest, i18n.ErrKeyValidationItemID, err)
		return
	}

	lang := c.Query("lang")

	detail, err := h.catalog.ItemDetail(c.Request.Context(), id, lang)
	if err != nil {
		if upstream.IsNotFound(err) {
			rb.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
			return
		}
		rb.Error(http.StatusBadGateway, i18n.ErrKeyUpstreamUnavailable, err)
		return
	}

	rb.OK(h.cacheMaxAge, detail)
}
