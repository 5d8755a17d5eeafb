package service

import (
	"encoding/json"
	"time"

	"parking_monitor/internal/models"
)

// ReportParams is one device occupancy report as received over HTTP.
type ReportParams struct {
	DeviceID   string
	Timestamp  any             // device clock, echoed back untouched
	WifiStatus string          // optional
	Slots      json.RawMessage // objects or 0/1 integers; anything else yields no slots
	SourceIP   string
}

// ReportResult is the outcome of applying a report.
type ReportResult struct {
	Snapshot    models.DeviceSnapshot
	Transitions []models.TransitionEvent
}

// StoreStats are the cheap counters exposed on /health.
type StoreStats struct {
	Devices       int
	HistoryEvents int
	HistoryCap    int
}

// RegisterParams carries a new admin account request.
type RegisterParams struct {
	Username string
	Email    string
	Password string
	Role     string
	// AssignRole is set only for callers already verified as admins;
	// otherwise Role is ignored and the default role applies.
	AssignRole bool
}

// Token is an issued bearer token.
type Token struct {
	Token     string
	ExpiresAt time.Time
	User      models.AdminUser
}
