package handlers

import (
	"time"

	"parking_monitor/internal/logger"
	"parking_monitor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options are the HTTP-layer settings taken from configuration.
type Options struct {
	AuthRequired    bool
	Development     bool
	RateLimitPerSec float64 // 0 disables ingest rate limiting
	RateBurst       int
	StreamInterval  time.Duration
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
	started  time.Time
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	return &Handler{services: services, log: log, opts: opts, started: time.Now()}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(h.recovery(), h.requestLogger)
	router.NoRoute(h.notFound)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health endpoint
	router.GET("/health", h.health)

	// Device ingest and snapshot reads
	h.registerParkingRoutes(router)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Analytics endpoints (protected)
	h.registerAdminRoutes(router)

	return router
}

func (h *Handler) registerParkingRoutes(r *gin.Engine) {
	ingest := []gin.HandlerFunc{}
	if h.opts.RateLimitPerSec > 0 {
		ingest = append(ingest, RateLimiter(rate.Limit(h.opts.RateLimitPerSec), h.opts.RateBurst))
	}
	r.POST("/parking-status", append(ingest, h.reportStatus)...)
	r.GET("/parking-status", h.getStatus)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/register", h.register)
		auth.GET("/me", h.tokenMiddleware, h.me)
	}
}

func (h *Handler) registerAdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin", h.adminMiddleware)
	{
		admin.GET("/dashboard", h.dashboard)
		admin.GET("/hourly-analytics", h.hourlyAnalytics)
		admin.GET("/history", h.history)
		admin.GET("/slots", h.slotStats)
		// WebSocket summary stream (HTTP upgrade) on the same port
		admin.GET("/ws", h.wsConnect)
	}
}
