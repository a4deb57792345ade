package http

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/middleware"
)

// Pooled error envelopes to reduce allocations on error paths, which a
// rate-limited public API hits often.
var errorResponsePool = sync.Pool{
	New: func() interface{} {
		return &dto.ErrorResponse{}
	},
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	resp.Error = ""
	resp.Message = ""
	resp.Details = nil
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	errorResponsePool.Put(resp)
}

// ResponseBuilder renders API responses with request IDs and localized
// error messages.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// OK sends a 200 response with the given body and a public cache hint
// matching the server-side view TTL.
func (b *ResponseBuilder) OK(maxAge time.Duration, body interface{}) {
	if maxAge > 0 {
		b.c.Header("Cache-Control", "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))
	}
	b.c.JSON(http.StatusOK, body)
}

// Error sends a localized error response for the given status and message
// key. The underlying error, when present, is attached to the context for
// the error-handler middleware to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	requestID := middleware.GetRequestID(b.c)
	locale := i18n.GetLocale(b.c)

	resp := getErrorResponse()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = i18n.GetTranslator().Translate(messageKey, locale)
	resp.RequestID = requestID
	resp.Timestamp = time.Now()

	if err != nil {
		_ = b.c.Error(err)
	}

	// Gin serializes synchronously, so the envelope can go back to the
	// pool right after.
	b.c.AbortWithStatusJSON(statusCode, resp)
	putErrorResponse(resp)
}

// DegradedList sends an empty results view with an error flag. List
// endpoints use it when the upstream fails and no cached view exists.
func (b *ResponseBuilder) DegradedList(statusCode int, err error) {
	resp := dto.NewDegradedList(dto.ErrCodeFromStatus(statusCode))
	resp.RequestID = middleware.GetRequestID(b.c)

	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
}
