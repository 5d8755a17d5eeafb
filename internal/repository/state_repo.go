package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"parking_monitor/internal/models"
)

// StateTx is the write view handed to StateMemory.Update callbacks.
type StateTx interface {
	Device(deviceID string) (models.DeviceSnapshot, bool)
	PutDevice(s models.DeviceSnapshot)
	FindLastOccupied(deviceID string, slotID int) (models.TransitionEvent, bool)
	AppendEvent(e models.TransitionEvent)
	DeviceCount() int
	History() HistoryReader
}

// HistoryReader is the read-only surface of the history log.
type HistoryReader interface {
	Len() int
	Cap() int
	Each(fn func(models.TransitionEvent) bool)
	Since(t time.Time) []models.TransitionEvent
	Recent(n int) []models.TransitionEvent
}

// StateView is the read view handed to StateMemory.View callbacks.
type StateView interface {
	Device(deviceID string) (models.DeviceSnapshot, bool)
	Devices() []models.DeviceSnapshot
	DeviceCount() int
	History() HistoryReader
}

// StateMemory owns the device snapshots and the history log. One RWMutex
// guards both so a report's diff, duration backfill and appends are atomic
// with respect to readers.
type StateMemory struct {
	mu      sync.RWMutex
	devices map[string]models.DeviceSnapshot
	history *HistoryLog
}

func NewStateMemory(historyCap int) *StateMemory {
	return &StateMemory{
		devices: make(map[string]models.DeviceSnapshot),
		history: NewHistoryLog(historyCap),
	}
}

// Ensure implementation of State interface at compile time.
var _ State = (*StateMemory)(nil)

// Update runs fn under the exclusive lock. fn must not fail after mutating.
func (m *StateMemory) Update(ctx context.Context, fn func(tx StateTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(memoryTx{m})
}

// View runs fn under the shared lock.
func (m *StateMemory) View(ctx context.Context, fn func(v StateView) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(memoryTx{m})
}

// memoryTx implements both StateTx and StateView over the locked state.
type memoryTx struct {
	m *StateMemory
}

func (t memoryTx) Device(deviceID string) (models.DeviceSnapshot, bool) {
	s, ok := t.m.devices[deviceID]
	return s, ok
}

func (t memoryTx) PutDevice(s models.DeviceSnapshot) {
	t.m.devices[s.DeviceID] = s
}

func (t memoryTx) FindLastOccupied(deviceID string, slotID int) (models.TransitionEvent, bool) {
	return t.m.history.FindLastOccupied(deviceID, slotID)
}

func (t memoryTx) AppendEvent(e models.TransitionEvent) {
	t.m.history.Append(e)
}

// Devices returns all snapshots ordered by device id.
func (t memoryTx) Devices() []models.DeviceSnapshot {
	out := make([]models.DeviceSnapshot, 0, len(t.m.devices))
	for _, s := range t.m.devices {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })
	return out
}

func (t memoryTx) DeviceCount() int { return len(t.m.devices) }

func (t memoryTx) History() HistoryReader { return t.m.history }
