package handlers

import (
	"strings"
	"time"

	"parking_monitor/internal/metrics"
	"parking_monitor/internal/models"
	"parking_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// bearerToken reads "Authorization: Bearer <token>", falling back to the
// token query parameter for websocket clients.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if q := strings.TrimSpace(c.Query("token")); q != "" {
			return q, nil
		}
		return "", service.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", service.ErrInvalidToken
	}
	return strings.TrimSpace(parts[1]), nil
}

// authenticate verifies the bearer token and stores its claims in the
// context. It aborts the request and returns false on failure.
func (h *Handler) authenticate(c *gin.Context) (*service.Claims, bool) {
	token, err := bearerToken(c)
	if err != nil {
		h.respondError(c, err, "auth_rejected", "path", c.Request.URL.Path)
		return nil, false
	}
	claims, err := h.services.Verify(token)
	if err != nil {
		h.respondError(c, err, "auth_rejected", "path", c.Request.URL.Path)
		return nil, false
	}

	// store in Gin context
	c.Set(claimsKey, claims)
	return claims, true
}

// tokenMiddleware requires any valid token.
func (h *Handler) tokenMiddleware(c *gin.Context) {
	if _, ok := h.authenticate(c); ok {
		c.Next()
	}
}

// adminMiddleware requires a valid token with an admin-capable role.
// With auth disabled the admin routes are open.
func (h *Handler) adminMiddleware(c *gin.Context) {
	if !h.opts.AuthRequired {
		c.Next()
		return
	}
	claims, ok := h.authenticate(c)
	if !ok {
		return
	}
	if !models.IsAdmin(claims.Role) {
		h.respondError(c, service.ErrAdminRequired, "auth_forbidden", "username", claims.Username, "role", claims.Role)
		return
	}
	c.Next()
}

// requestLogger logs one line per request and records its latency.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	elapsed := time.Since(start)
	status := c.Writer.Status()
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	metrics.ObserveRequest(c.Request.Method, route, status, elapsed.Seconds())

	if h.log != nil {
		h.log.Debugw("http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", elapsed.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

func claimsFrom(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}
