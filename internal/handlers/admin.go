package handlers

import (
	"net/http"
	"strconv"
	"strings"

	parking "parking_monitor"

	"github.com/gin-gonic/gin"
)

const (
	errDaysInvalid  = "invalid 'days'; use a positive integer"
	errLimitInvalid = "invalid 'limit'; use a positive integer"
)

// positiveQueryInt parses an optional positive integer query parameter.
// A missing value yields 0.
func positiveQueryInt(c *gin.Context, name string) (int, bool) {
	qs := strings.TrimSpace(c.Query(name))
	if qs == "" {
		return 0, true
	}
	v, err := strconv.Atoi(qs)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// @Summary      Admin dashboard
// @Description  System totals, per-device status, slot stats, recent changes, hourly and daily patterns, peak hours.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  parking_monitor.Response
// @Failure      401  {object}  parking_monitor.Response
// @Failure      403  {object}  parking_monitor.Response
// @Failure      500  {object}  parking_monitor.Response
// @Router       /admin/dashboard [get]
// @Security     BearerAuth
func (h *Handler) dashboard(c *gin.Context) {
	d, err := h.services.Dashboard(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "dashboard_failed")
		return
	}
	c.JSON(http.StatusOK, parking.OK(d))
}

// @Summary      Hourly analytics
// @Description  Activity per civil hour of day over the last days*24 hours. days defaults to 7, capped at 30.
// @Tags         admin
// @Produce      json
// @Param        days  query     int  false  "Window in days"  example(7)
// @Success      200   {object}  parking_monitor.Response
// @Failure      400   {object}  parking_monitor.Response
// @Failure      401   {object}  parking_monitor.Response
// @Router       /admin/hourly-analytics [get]
// @Security     BearerAuth
func (h *Handler) hourlyAnalytics(c *gin.Context) {
	days, ok := positiveQueryInt(c, "days")
	if !ok {
		c.JSON(http.StatusBadRequest, parking.Fail(errDaysInvalid))
		return
	}
	out, err := h.services.HourlyAnalytics(c.Request.Context(), days)
	if err != nil {
		h.respondError(c, err, "hourly_analytics_failed", "days", days)
		return
	}
	c.JSON(http.StatusOK, parking.OK(out))
}

// @Summary      Recent slot changes
// @Tags         admin
// @Produce      json
// @Param        limit  query     int  false  "Number of events, newest first"  example(50)
// @Success      200    {object}  parking_monitor.Response
// @Failure      400    {object}  parking_monitor.Response
// @Failure      401    {object}  parking_monitor.Response
// @Router       /admin/history [get]
// @Security     BearerAuth
func (h *Handler) history(c *gin.Context) {
	limit, ok := positiveQueryInt(c, "limit")
	if !ok {
		c.JSON(http.StatusBadRequest, parking.Fail(errLimitInvalid))
		return
	}
	changes, err := h.services.RecentChanges(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err, "history_list_failed", "limit", limit)
		return
	}
	c.JSON(http.StatusOK, parking.OKList(changes, len(changes)))
}

// @Summary      Per-slot statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  parking_monitor.Response
// @Failure      401  {object}  parking_monitor.Response
// @Router       /admin/slots [get]
// @Security     BearerAuth
func (h *Handler) slotStats(c *gin.Context) {
	stats, err := h.services.SlotStats(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "slot_stats_failed")
		return
	}
	c.JSON(http.StatusOK, parking.OKList(stats, len(stats)))
}
