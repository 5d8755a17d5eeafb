package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	parking "parking_monitor"
	"parking_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// reportRequest is the device payload. Slots stay raw: they may be objects
// or 0/1 integers and are normalized by the service.
type reportRequest struct {
	DeviceID   string          `json:"deviceId"`
	Timestamp  any             `json:"timestamp,omitempty"`
	WifiStatus string          `json:"wifiStatus,omitempty"`
	Slots      json.RawMessage `json:"slots"`
}

// ReportRequest is an exported model for Swagger docs of the device payload.
type ReportRequest struct {
	// Device identifier
	DeviceID string `json:"deviceId" example:"ESP32-A1"`
	// Device clock, echoed back untouched
	Timestamp int64 `json:"timestamp,omitempty" example:"1718000000000"`
	// Optional connectivity note
	WifiStatus string `json:"wifiStatus,omitempty" example:"connected"`
	// Either [{"id":1,"occupied":true}] or [0,1,0]
	Slots []any `json:"slots"`
}

// @Summary      Report slot occupancy
// @Description  Ingest one device report. Slots are objects {id, occupied, lastUpdate} or 0/1 integers.
// @Tags         parking
// @Accept       json
// @Produce      json
// @Param        body  body      ReportRequest  true  "Device report"
// @Success      200   {object}  parking_monitor.Response
// @Failure      400   {object}  parking_monitor.Response
// @Failure      429   {object}  parking_monitor.Response
// @Router       /parking-status [post]
func (h *Handler) reportStatus(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if h.log != nil {
			h.log.Infow("report_bad_request_body", "err", err, "client_ip", c.ClientIP())
		}
		c.JSON(http.StatusBadRequest, parking.Fail(errInvalidBody))
		return
	}

	res, err := h.services.Report(c.Request.Context(), service.ReportParams{
		DeviceID:   req.DeviceID,
		Timestamp:  req.Timestamp,
		WifiStatus: req.WifiStatus,
		Slots:      req.Slots,
		SourceIP:   c.ClientIP(),
	})
	if err != nil {
		h.respondError(c, err, "report_failed", "device_id", req.DeviceID)
		return
	}

	c.JSON(http.StatusOK, parking.OK(parking.ReportAck{
		DeviceID:       res.Snapshot.DeviceID,
		AvailableSlots: res.Snapshot.AvailableSlots,
		TotalSlots:     res.Snapshot.TotalSlots,
		Timestamp:      res.Snapshot.LastUpdate,
		Changes:        len(res.Transitions),
	}))
}

// @Summary      Current slot status
// @Description  With deviceId returns that device's snapshot, otherwise every device.
// @Tags         parking
// @Produce      json
// @Param        deviceId  query     string  false  "Device identifier"
// @Success      200       {object}  parking_monitor.Response
// @Failure      404       {object}  parking_monitor.DeviceNotFound
// @Router       /parking-status [get]
func (h *Handler) getStatus(c *gin.Context) {
	ctx := c.Request.Context()

	if deviceID := strings.TrimSpace(c.Query("deviceId")); deviceID != "" {
		snap, err := h.services.GetDevice(ctx, deviceID)
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, parking.DeviceNotFound{Error: err.Error(), DeviceID: deviceID})
			return
		}
		if err != nil {
			h.respondError(c, err, "device_get_failed", "device_id", deviceID)
			return
		}
		c.JSON(http.StatusOK, parking.OK(snap))
		return
	}

	devices, err := h.services.ListDevices(ctx)
	if err != nil {
		h.respondError(c, err, "device_list_failed")
		return
	}
	c.JSON(http.StatusOK, parking.OKList(devices, len(devices)))
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  parking_monitor.Response
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	st, err := h.services.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "health_failed")
		return
	}
	c.JSON(http.StatusOK, parking.OK(parking.Health{
		Status:        statusOK,
		Devices:       st.Devices,
		HistoryEvents: st.HistoryEvents,
		HistoryCap:    st.HistoryCap,
		Uptime:        time.Since(h.started).Round(time.Second).String(),
		Time:          time.Now().UTC(),
	}))
}
