package handlers

import (
	"errors"
	"fmt"
	"net/http"

	parking "parking_monitor"
	"parking_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInternal    = "Internal server error"
	errRouteNotFnd = "Route not found"
	errInvalidBody = "Invalid request body"
)

// statusFor maps the service error categories to HTTP codes; anything else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrThrottled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the envelope for err. Client errors carry their own
// message; internal ones are logged and redacted.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logAndJSONError(c, code, errInternal, logKey, err, kv...)
		return
	}
	if h.log != nil {
		fields := append([]interface{}{"err", err, "status", code}, kv...)
		h.log.Infow(logKey, fields...)
	}
	c.AbortWithStatusJSON(code, parking.Fail(err.Error()))
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	resp := parking.Fail(userMsg)
	if h.opts.Development && err != nil {
		resp.Detail = err.Error()
	}
	c.AbortWithStatusJSON(httpCode, resp)
}

func (h *Handler) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, parking.Fail(errRouteNotFnd))
}

// recovery turns panics into a redacted 500.
func (h *Handler) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "http_panic",
			fmt.Errorf("panic: %v", recovered), "path", c.Request.URL.Path)
	})
}
