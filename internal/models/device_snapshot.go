package models

import "time"

// Slot is one monitored parking space inside a device report.
type Slot struct {
	ID         int       `json:"id"`
	Occupied   bool      `json:"occupied"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// DeviceSnapshot is the latest report of a device. It is replaced wholesale on every report.
type DeviceSnapshot struct {
	DeviceID        string    `json:"deviceId"`
	Slots           []Slot    `json:"slots"`
	AvailableSlots  int       `json:"availableSlots"`
	TotalSlots      int       `json:"totalSlots"`
	LastUpdate      time.Time `json:"lastUpdate"`
	WifiStatus      string    `json:"wifiStatus,omitempty"`
	DeviceTimestamp any       `json:"deviceTimestamp,omitempty"` // as sent by the device
}

// OccupiedSlots is derived, never reported.
func (d DeviceSnapshot) OccupiedSlots() int {
	return d.TotalSlots - d.AvailableSlots
}

// Clone returns a copy that does not share the slot slice.
func (d DeviceSnapshot) Clone() DeviceSnapshot {
	out := d
	if d.Slots != nil {
		out.Slots = make([]Slot, len(d.Slots))
		copy(out.Slots, d.Slots)
	}
	return out
}
