package service

import (
	"time"

	"parking_monitor/internal/models"
)

// DeviceStatus is the current occupancy of one device.
type DeviceStatus struct {
	DeviceID       string        `json:"deviceId"`
	TotalSlots     int           `json:"totalSlots"`
	AvailableSlots int           `json:"availableSlots"`
	OccupiedSlots  int           `json:"occupiedSlots"`
	OccupancyRate  float64       `json:"occupancyRate"` // percent, one decimal
	LastUpdate     time.Time     `json:"lastUpdate"`
	WifiStatus     string        `json:"wifiStatus,omitempty"`
	Slots          []models.Slot `json:"slots"`
}

// SystemSummary sums all devices.
type SystemSummary struct {
	TotalDevices   int       `json:"totalDevices"`
	TotalSlots     int       `json:"totalSlots"`
	TotalOccupied  int       `json:"totalOccupied"`
	TotalAvailable int       `json:"totalAvailable"`
	OccupancyRate  float64   `json:"occupancyRate"`
	TotalChanges   int       `json:"totalChanges"`
	ChangesLast24h int       `json:"changesLast24h"`
	ChangesLast7d  int       `json:"changesLast7d"`
	HistoryCap     int       `json:"historyCap"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// SlotStat is the usage of one (device, slot) pair over the retained history.
type SlotStat struct {
	DeviceID               string    `json:"deviceId"`
	SlotID                 int       `json:"slotId"`
	CurrentlyOccupied      bool      `json:"currentlyOccupied"`
	LastUpdate             time.Time `json:"lastUpdate"`
	TotalOccupations       int       `json:"totalOccupations"`
	TotalDuration          int64     `json:"totalDuration"`   // ms
	AverageDuration        int64     `json:"averageDuration"` // ms
	AverageDurationMinutes float64   `json:"averageDurationMinutes"`
	ChangesLast24h         int       `json:"changesLast24h"`
	ChangesLast7d          int       `json:"changesLast7d"`
}

// RecentChange is a history event formatted for display.
type RecentChange struct {
	ID              string    `json:"id"`
	DeviceID        string    `json:"deviceId"`
	SlotID          int       `json:"slotId"`
	PreviousState   bool      `json:"previousState"`
	NewState        bool      `json:"newState"`
	Action          string    `json:"action"` // occupied | available
	Timestamp       time.Time `json:"timestamp"`
	SourceIP        string    `json:"sourceIp"`
	DurationMinutes *int64    `json:"durationMinutes"`
}

// HourBucket counts activity for one civil hour of day.
type HourBucket struct {
	Hour          int    `json:"hour"`
	Label         string `json:"label"`
	Occupations   int    `json:"occupations"`
	Releases      int    `json:"releases"`
	NetChange     int    `json:"netChange"`
	TotalActivity int    `json:"totalActivity"`
}

// DayBucket counts activity for one civil date.
type DayBucket struct {
	Date          string `json:"date"`
	Occupations   int    `json:"occupations"`
	Releases      int    `json:"releases"`
	TotalActivity int    `json:"totalActivity"`
}

// Dashboard is the full analytics bundle.
type Dashboard struct {
	Summary           SystemSummary  `json:"systemStats"`
	Devices           []DeviceStatus `json:"currentStatus"`
	SlotStats         []SlotStat     `json:"slotStats"`
	RecentChanges     []RecentChange `json:"recentChanges"`
	HourlyPattern     []HourBucket   `json:"hourlyPattern"`
	DailyPattern      []DayBucket    `json:"dailyPattern,omitempty"`
	PeakHours         []HourBucket   `json:"peakHours"`
	ExtendedAnalytics bool           `json:"extendedAnalytics"`
}

// HourlySummary highlights the extremes of an hourly breakdown.
type HourlySummary struct {
	BusiestHour    HourBucket `json:"busiestHour"`
	QuietestHour   HourBucket `json:"quietestHour"`
	TotalActivity  int        `json:"totalActivity"`
	AveragePerHour float64    `json:"averagePerHour"`
}

// HourlyAnalytics is the hourly breakdown over a multi-day window.
type HourlyAnalytics struct {
	Days        int           `json:"days"`
	PeriodHours int           `json:"periodHours"`
	Hours       []HourBucket  `json:"hours"`
	Summary     HourlySummary `json:"summary"`
}
