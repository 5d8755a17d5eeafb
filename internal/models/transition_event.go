package models

import "time"

// TransitionEvent records one flip of a slot's occupied flag.
type TransitionEvent struct {
	ID            string    `json:"id"`
	DeviceID      string    `json:"deviceId"`
	SlotID        int       `json:"slotId"`
	PreviousState bool      `json:"previousState"`
	NewState      bool      `json:"newState"`
	Timestamp     time.Time `json:"timestamp"`
	SourceIP      string    `json:"sourceIp"`
	Duration      *int64    `json:"duration,omitempty"` // ms occupied; only on occupied -> available
}

// IsOccupation reports whether the slot became occupied.
func (e TransitionEvent) IsOccupation() bool { return e.NewState }

// IsRelease reports whether the slot became available.
func (e TransitionEvent) IsRelease() bool { return !e.NewState }
