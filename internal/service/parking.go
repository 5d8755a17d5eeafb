package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"parking_monitor/internal/logger"
	"parking_monitor/internal/metrics"
	"parking_monitor/internal/models"
	"parking_monitor/internal/repository"

	"github.com/google/uuid"
)

type ParkingService struct {
	state repository.State
	now   func() time.Time
	log   *logger.Logger
}

func NewParkingService(state repository.State, now func() time.Time, log *logger.Logger) *ParkingService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ParkingService{state: state, now: now, log: log}
}

// Report applies a device report: it diffs the slots against the previous
// snapshot, appends one history event per flipped slot and replaces the
// snapshot. The first report of a device only records slots.
func (s *ParkingService) Report(ctx context.Context, p ReportParams) (ReportResult, error) {
	deviceID := strings.TrimSpace(p.DeviceID)
	if deviceID == "" {
		metrics.ReportsTotal.WithLabelValues("rejected").Inc()
		return ReportResult{}, ErrDeviceIDRequired
	}

	var (
		snap   models.DeviceSnapshot
		events []models.TransitionEvent
	)
	err := s.state.Update(ctx, func(tx repository.StateTx) error {
		// the clock is read under the lock so history stays ordered
		now := s.now().UTC()
		slots := normalizeSlots(p.Slots, now)
		snap = models.DeviceSnapshot{
			DeviceID:        deviceID,
			Slots:           slots,
			AvailableSlots:  countAvailable(slots),
			TotalSlots:      len(slots),
			LastUpdate:      now,
			WifiStatus:      p.WifiStatus,
			DeviceTimestamp: p.Timestamp,
		}
		if prev, ok := tx.Device(deviceID); ok {
			events = detectTransitions(tx, prev, slots, now, p.SourceIP)
		}
		tx.PutDevice(snap)

		metrics.DevicesTracked.Set(float64(tx.DeviceCount()))
		metrics.HistoryEvents.Set(float64(tx.History().Len()))
		return nil
	})
	if err != nil {
		return ReportResult{}, err
	}

	metrics.ReportsTotal.WithLabelValues("accepted").Inc()
	for _, e := range events {
		metrics.TransitionsTotal.WithLabelValues(metrics.StateLabel(e.NewState)).Inc()
		s.log.Debugw("slot_transition",
			"device_id", e.DeviceID,
			"slot_id", e.SlotID,
			"occupied", e.NewState,
			"source_ip", e.SourceIP,
		)
	}

	return ReportResult{Snapshot: snap.Clone(), Transitions: events}, nil
}

// detectTransitions must run inside the write section: the duration lookup
// happens before the release event itself is appended.
func detectTransitions(tx repository.StateTx, prev models.DeviceSnapshot, slots []models.Slot, now time.Time, sourceIP string) []models.TransitionEvent {
	prior := make(map[int]bool, len(prev.Slots))
	for _, sl := range prev.Slots {
		prior[sl.ID] = sl.Occupied
	}

	var events []models.TransitionEvent
	for _, sl := range slots {
		was, ok := prior[sl.ID]
		if !ok || was == sl.Occupied {
			continue
		}
		e := models.TransitionEvent{
			ID:            uuid.NewString(),
			DeviceID:      prev.DeviceID,
			SlotID:        sl.ID,
			PreviousState: was,
			NewState:      sl.Occupied,
			Timestamp:     now,
			SourceIP:      sourceIP,
		}
		if was && !sl.Occupied {
			if last, found := tx.FindLastOccupied(prev.DeviceID, sl.ID); found {
				d := now.Sub(last.Timestamp).Milliseconds()
				e.Duration = &d
			}
		}
		tx.AppendEvent(e)
		events = append(events, e)
		// a repeated id in the same report diffs against the value just applied
		prior[sl.ID] = sl.Occupied
	}
	return events
}

// GetDevice returns the latest snapshot of one device.
func (s *ParkingService) GetDevice(ctx context.Context, deviceID string) (models.DeviceSnapshot, error) {
	var (
		snap  models.DeviceSnapshot
		found bool
	)
	err := s.state.View(ctx, func(v repository.StateView) error {
		snap, found = v.Device(strings.TrimSpace(deviceID))
		return nil
	})
	if err != nil {
		return models.DeviceSnapshot{}, err
	}
	if !found {
		return models.DeviceSnapshot{}, ErrDeviceNotFound
	}
	return snap.Clone(), nil
}

// ListDevices returns every snapshot ordered by device id.
func (s *ParkingService) ListDevices(ctx context.Context) ([]models.DeviceSnapshot, error) {
	var out []models.DeviceSnapshot
	err := s.state.View(ctx, func(v repository.StateView) error {
		devs := v.Devices()
		out = make([]models.DeviceSnapshot, 0, len(devs))
		for _, d := range devs {
			out = append(out, d.Clone())
		}
		return nil
	})
	return out, err
}

// Stats returns device and history counters.
func (s *ParkingService) Stats(ctx context.Context) (StoreStats, error) {
	var st StoreStats
	err := s.state.View(ctx, func(v repository.StateView) error {
		st = StoreStats{
			Devices:       v.DeviceCount(),
			HistoryEvents: v.History().Len(),
			HistoryCap:    v.History().Cap(),
		}
		return nil
	})
	return st, err
}

func countAvailable(slots []models.Slot) int {
	n := 0
	for _, sl := range slots {
		if !sl.Occupied {
			n++
		}
	}
	return n
}

// normalizeSlots accepts either slot objects or 0/1 integers. Ids default to
// the 1-based position, lastUpdate to now. A non-array yields no slots.
func normalizeSlots(raw json.RawMessage, now time.Time) []models.Slot {
	slots := make([]models.Slot, 0)
	var items []json.RawMessage
	if len(bytes.TrimSpace(raw)) == 0 || json.Unmarshal(raw, &items) != nil {
		return slots
	}

	for i, item := range items {
		pos := i + 1
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}
		switch c := item[0]; {
		case c == '{':
			slots = append(slots, parseSlotObject(item, pos, now))
		case c == '-' || (c >= '0' && c <= '9'):
			var v float64
			if err := json.Unmarshal(item, &v); err != nil {
				continue
			}
			slots = append(slots, models.Slot{ID: pos, Occupied: v == 1, LastUpdate: now})
		}
	}
	return slots
}

type slotObject struct {
	ID         json.RawMessage `json:"id"`
	Occupied   json.RawMessage `json:"occupied"`
	LastUpdate json.RawMessage `json:"lastUpdate"`
}

func parseSlotObject(item json.RawMessage, pos int, now time.Time) models.Slot {
	sl := models.Slot{ID: pos, LastUpdate: now}
	var obj slotObject
	if err := json.Unmarshal(item, &obj); err != nil {
		return sl
	}
	if id, ok := parseInt(obj.ID); ok {
		sl.ID = id
	}
	sl.Occupied = parseTruthy(obj.Occupied)
	if t, ok := parseTimestamp(obj.LastUpdate); ok {
		sl.LastUpdate = t
	}
	return sl
}

func parseInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// parseTruthy accepts true, 1, "true" and "1".
func parseTruthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f == 1
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.ToLower(strings.TrimSpace(s))
		return s == "true" || s == "1"
	}
	return false
}

// parseTimestamp accepts RFC3339 strings and epoch milliseconds.
func parseTimestamp(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 {
		return time.Time{}, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.UTC(), true
		}
		return time.Time{}, false
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil && ms > 0 {
		return time.UnixMilli(int64(ms)).UTC(), true
	}
	return time.Time{}, false
}
