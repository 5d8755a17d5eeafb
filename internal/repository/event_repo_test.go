package repository

import (
	"fmt"
	"testing"
	"time"

	"parking_monitor/internal/models"
)

var t0 = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

func ev(id string, slot int, newState bool, at time.Time) models.TransitionEvent {
	return models.TransitionEvent{
		ID:            id,
		DeviceID:      "D1",
		SlotID:        slot,
		PreviousState: !newState,
		NewState:      newState,
		Timestamp:     at,
	}
}

func ids(events []models.TransitionEvent) string {
	out := ""
	for _, e := range events {
		out += e.ID + ","
	}
	return out
}

func TestHistoryLog_AppendBelowCap(t *testing.T) {
	t.Parallel()

	h := NewHistoryLog(3)
	h.Append(ev("a", 1, true, t0))
	h.Append(ev("b", 1, false, t0.Add(time.Minute)))

	if h.Len() != 2 || h.Cap() != 3 {
		t.Fatalf("len=%d cap=%d", h.Len(), h.Cap())
	}
	if got := ids(h.Recent(10)); got != "b,a," {
		t.Fatalf("Recent order: %s", got)
	}
}

func TestHistoryLog_EvictsOldestFirst(t *testing.T) {
	t.Parallel()

	h := NewHistoryLog(3)
	for i := 0; i < 7; i++ {
		h.Append(ev(fmt.Sprint(i), 1, i%2 == 0, t0.Add(time.Duration(i)*time.Minute)))
	}

	if h.Len() != 3 {
		t.Fatalf("len should stay at cap, got %d", h.Len())
	}
	var seen []models.TransitionEvent
	h.Each(func(e models.TransitionEvent) bool {
		seen = append(seen, e)
		return true
	})
	if got := ids(seen); got != "4,5,6," {
		t.Fatalf("expected only the newest three in order, got %s", got)
	}
}

func TestHistoryLog_DefaultCap(t *testing.T) {
	t.Parallel()

	if got := NewHistoryLog(0).Cap(); got != DefaultHistoryCap {
		t.Fatalf("cap=%d, want %d", got, DefaultHistoryCap)
	}
}

func TestHistoryLog_FindLastOccupied(t *testing.T) {
	t.Parallel()

	h := NewHistoryLog(10)
	if _, ok := h.FindLastOccupied("D1", 1); ok {
		t.Fatalf("empty log must not find anything")
	}

	h.Append(ev("occ-1", 1, true, t0))
	h.Append(ev("rel-1", 1, false, t0.Add(time.Minute)))
	h.Append(ev("occ-2", 1, true, t0.Add(2*time.Minute)))
	h.Append(ev("occ-slot2", 2, true, t0.Add(3*time.Minute)))

	got, ok := h.FindLastOccupied("D1", 1)
	if !ok || got.ID != "occ-2" {
		t.Fatalf("want occ-2, got %+v ok=%v", got, ok)
	}
	if _, ok := h.FindLastOccupied("D2", 1); ok {
		t.Fatalf("other device must not match")
	}
	if _, ok := h.FindLastOccupied("D1", 3); ok {
		t.Fatalf("unknown slot must not match")
	}
}

func TestHistoryLog_FindLastOccupiedAfterWrap(t *testing.T) {
	t.Parallel()

	h := NewHistoryLog(2)
	h.Append(ev("occ", 1, true, t0))
	h.Append(ev("x", 2, true, t0))
	h.Append(ev("y", 3, true, t0)) // evicts "occ"

	if _, ok := h.FindLastOccupied("D1", 1); ok {
		t.Fatalf("evicted event must not be found")
	}
}

func TestHistoryLog_SinceIsInclusive(t *testing.T) {
	t.Parallel()

	h := NewHistoryLog(10)
	h.Append(ev("old", 1, true, t0))
	h.Append(ev("edge", 1, false, t0.Add(time.Hour)))
	h.Append(ev("new", 1, true, t0.Add(2*time.Hour)))

	if got := ids(h.Since(t0.Add(time.Hour))); got != "edge,new," {
		t.Fatalf("Since: %s", got)
	}
	if got := h.Since(t0.Add(3 * time.Hour)); len(got) != 0 {
		t.Fatalf("expected empty, got %d", len(got))
	}
}

func TestHistoryLog_RecentBounds(t *testing.T) {
	t.Parallel()

	h := NewHistoryLog(5)
	if got := h.Recent(3); got == nil || len(got) != 0 {
		t.Fatalf("empty log: want empty non-nil slice, got %#v", got)
	}
	for i := 0; i < 4; i++ {
		h.Append(ev(fmt.Sprint(i), 1, i%2 == 0, t0))
	}
	if got := ids(h.Recent(2)); got != "3,2," {
		t.Fatalf("Recent(2): %s", got)
	}
	if got := h.Recent(0); len(got) != 0 {
		t.Fatalf("Recent(0) should be empty")
	}
}
