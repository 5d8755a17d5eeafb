package repository

import (
	"time"

	"parking_monitor/internal/models"
)

// DefaultHistoryCap is used when a non-positive capacity is requested.
const DefaultHistoryCap = 10000

// HistoryLog is a bounded FIFO of transition events backed by a ring buffer.
// It is not safe for concurrent use on its own; StateMemory guards it.
type HistoryLog struct {
	buf  []models.TransitionEvent
	head int // index of the oldest event once the buffer is full
	max  int
}

func NewHistoryLog(capacity int) *HistoryLog {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &HistoryLog{max: capacity}
}

// Append adds e at the end, overwriting the oldest event when the log is full.
func (h *HistoryLog) Append(e models.TransitionEvent) {
	if len(h.buf) < h.max {
		h.buf = append(h.buf, e)
		return
	}
	h.buf[h.head] = e
	h.head = (h.head + 1) % h.max
}

// Len returns the number of retained events.
func (h *HistoryLog) Len() int { return len(h.buf) }

// Cap returns the retention limit.
func (h *HistoryLog) Cap() int { return h.max }

// at returns the i-th oldest retained event.
func (h *HistoryLog) at(i int) models.TransitionEvent {
	return h.buf[(h.head+i)%len(h.buf)]
}

// FindLastOccupied returns the newest event for the pair whose NewState is occupied.
func (h *HistoryLog) FindLastOccupied(deviceID string, slotID int) (models.TransitionEvent, bool) {
	for i := len(h.buf) - 1; i >= 0; i-- {
		e := h.at(i)
		if e.NewState && e.SlotID == slotID && e.DeviceID == deviceID {
			return e, true
		}
	}
	return models.TransitionEvent{}, false
}

// Each calls fn for every event from oldest to newest until fn returns false.
func (h *HistoryLog) Each(fn func(models.TransitionEvent) bool) {
	for i := 0; i < len(h.buf); i++ {
		if !fn(h.at(i)) {
			return
		}
	}
}

// Since returns events with Timestamp >= t, oldest first.
func (h *HistoryLog) Since(t time.Time) []models.TransitionEvent {
	out := make([]models.TransitionEvent, 0)
	h.Each(func(e models.TransitionEvent) bool {
		if !e.Timestamp.Before(t) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Recent returns up to n events, newest first.
func (h *HistoryLog) Recent(n int) []models.TransitionEvent {
	if n <= 0 {
		return []models.TransitionEvent{}
	}
	if n > len(h.buf) {
		n = len(h.buf)
	}
	out := make([]models.TransitionEvent, 0, n)
	for i := len(h.buf) - 1; i >= len(h.buf)-n; i-- {
		out = append(out, h.at(i))
	}
	return out
}
