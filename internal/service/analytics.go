package service

import (
	"context"
	"sort"
	"time"

	"parking_monitor/internal/models"
	"parking_monitor/internal/repository"
)

const (
	day  = 24 * time.Hour
	week = 7 * day

	defaultRecentLimit = 20
	defaultPeakHours   = 3

	DefaultAnalyticsDays = 7
	MaxAnalyticsDays     = 30
)

// AnalyticsService computes every aggregate on demand under the shared lock.
// Nothing is cached between requests.
type AnalyticsService struct {
	state       repository.State
	now         func() time.Time
	recentLimit int
	peakHours   int
	offset      time.Duration
	extended    bool
}

func NewAnalyticsService(state repository.State, opts Options) *AnalyticsService {
	s := &AnalyticsService{
		state:       state,
		now:         opts.clock(),
		recentLimit: opts.RecentLimit,
		peakHours:   opts.PeakHours,
		offset:      opts.CivilOffset,
		extended:    opts.ExtendedAnalytics,
	}
	if s.recentLimit <= 0 {
		s.recentLimit = defaultRecentLimit
	}
	if s.peakHours <= 0 {
		s.peakHours = defaultPeakHours
	}
	return s
}

// Summary returns the system-wide totals.
func (s *AnalyticsService) Summary(ctx context.Context) (SystemSummary, error) {
	now := s.now().UTC()
	var out SystemSummary
	err := s.state.View(ctx, func(v repository.StateView) error {
		out = buildSummary(v, now)
		return nil
	})
	return out, err
}

// Dashboard returns the full bundle computed from one consistent snapshot.
func (s *AnalyticsService) Dashboard(ctx context.Context) (Dashboard, error) {
	now := s.now().UTC()
	var out Dashboard
	err := s.state.View(ctx, func(v repository.StateView) error {
		hourly := buildHourlyPattern(v.History(), now.Add(-day), s.offset)
		out = Dashboard{
			Summary:           buildSummary(v, now),
			Devices:           buildDeviceStatus(v.Devices()),
			SlotStats:         buildSlotStats(v, now),
			RecentChanges:     buildRecentChanges(v.History(), s.recentLimit),
			HourlyPattern:     hourly,
			PeakHours:         peakHours(hourly, s.peakHours),
			ExtendedAnalytics: s.extended,
		}
		if s.extended {
			out.DailyPattern = buildDailyPattern(v.History(), now, s.offset)
		}
		return nil
	})
	return out, err
}

// HourlyAnalytics buckets the last days*24 hours by civil hour of day.
func (s *AnalyticsService) HourlyAnalytics(ctx context.Context, days int) (HourlyAnalytics, error) {
	days = clampDays(days)
	now := s.now().UTC()
	periodHours := days * 24

	var out HourlyAnalytics
	err := s.state.View(ctx, func(v repository.StateView) error {
		hours := buildHourlyPattern(v.History(), now.Add(-time.Duration(periodHours)*time.Hour), s.offset)
		out = HourlyAnalytics{
			Days:        days,
			PeriodHours: periodHours,
			Hours:       hours,
			Summary:     summarizeHours(hours, periodHours),
		}
		return nil
	})
	return out, err
}

// RecentChanges returns the newest limit events; limit <= 0 uses the configured default.
func (s *AnalyticsService) RecentChanges(ctx context.Context, limit int) ([]RecentChange, error) {
	if limit <= 0 {
		limit = s.recentLimit
	}
	var out []RecentChange
	err := s.state.View(ctx, func(v repository.StateView) error {
		out = buildRecentChanges(v.History(), limit)
		return nil
	})
	return out, err
}

// SlotStats returns per-slot usage for every slot in the live snapshots.
func (s *AnalyticsService) SlotStats(ctx context.Context) ([]SlotStat, error) {
	now := s.now().UTC()
	var out []SlotStat
	err := s.state.View(ctx, func(v repository.StateView) error {
		out = buildSlotStats(v, now)
		return nil
	})
	return out, err
}

func clampDays(days int) int {
	switch {
	case days <= 0:
		return DefaultAnalyticsDays
	case days > MaxAnalyticsDays:
		return MaxAnalyticsDays
	default:
		return days
	}
}

func buildSummary(v repository.StateView, now time.Time) SystemSummary {
	out := SystemSummary{GeneratedAt: now}
	for _, d := range v.Devices() {
		out.TotalDevices++
		out.TotalSlots += d.TotalSlots
		out.TotalAvailable += d.AvailableSlots
		out.TotalOccupied += d.OccupiedSlots()
	}
	out.OccupancyRate = occupancyRate(out.TotalOccupied, out.TotalSlots)

	h := v.History()
	out.TotalChanges = h.Len()
	out.HistoryCap = h.Cap()
	dayAgo, weekAgo := now.Add(-day), now.Add(-week)
	h.Each(func(e models.TransitionEvent) bool {
		if !e.Timestamp.Before(weekAgo) {
			out.ChangesLast7d++
		}
		if !e.Timestamp.Before(dayAgo) {
			out.ChangesLast24h++
		}
		return true
	})
	return out
}

func buildDeviceStatus(devs []models.DeviceSnapshot) []DeviceStatus {
	out := make([]DeviceStatus, 0, len(devs))
	for _, d := range devs {
		occupied := d.OccupiedSlots()
		out = append(out, DeviceStatus{
			DeviceID:       d.DeviceID,
			TotalSlots:     d.TotalSlots,
			AvailableSlots: d.AvailableSlots,
			OccupiedSlots:  occupied,
			OccupancyRate:  occupancyRate(occupied, d.TotalSlots),
			LastUpdate:     d.LastUpdate,
			WifiStatus:     d.WifiStatus,
			Slots:          d.Clone().Slots,
		})
	}
	return out
}

type slotKey struct {
	deviceID string
	slotID   int
}

// buildSlotStats seeds one entry per live slot and scans the history once.
func buildSlotStats(v repository.StateView, now time.Time) []SlotStat {
	stats := make(map[slotKey]*SlotStat)
	order := make([]*SlotStat, 0)
	for _, d := range v.Devices() {
		for _, sl := range d.Slots {
			k := slotKey{d.DeviceID, sl.ID}
			if _, dup := stats[k]; dup {
				continue
			}
			st := &SlotStat{
				DeviceID:          d.DeviceID,
				SlotID:            sl.ID,
				CurrentlyOccupied: sl.Occupied,
				LastUpdate:        sl.LastUpdate,
			}
			stats[k] = st
			order = append(order, st)
		}
	}

	dayAgo, weekAgo := now.Add(-day), now.Add(-week)
	v.History().Each(func(e models.TransitionEvent) bool {
		st, ok := stats[slotKey{e.DeviceID, e.SlotID}]
		if !ok {
			return true
		}
		if e.NewState {
			st.TotalOccupations++
		} else if e.Duration != nil {
			st.TotalDuration += *e.Duration
		}
		if !e.Timestamp.Before(weekAgo) {
			st.ChangesLast7d++
		}
		if !e.Timestamp.Before(dayAgo) {
			st.ChangesLast24h++
		}
		return true
	})

	out := make([]SlotStat, 0, len(order))
	for _, st := range order {
		if st.TotalOccupations > 0 {
			avg := float64(st.TotalDuration) / float64(st.TotalOccupations)
			st.AverageDuration = int64(avg + 0.5)
			st.AverageDurationMinutes = round1(avg / 60000)
		}
		out = append(out, *st)
	}
	// most used first; ties keep device/slot order
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalOccupations > out[j].TotalOccupations
	})
	return out
}

func buildRecentChanges(h repository.HistoryReader, limit int) []RecentChange {
	events := h.Recent(limit)
	out := make([]RecentChange, 0, len(events))
	for _, e := range events {
		rc := RecentChange{
			ID:            e.ID,
			DeviceID:      e.DeviceID,
			SlotID:        e.SlotID,
			PreviousState: e.PreviousState,
			NewState:      e.NewState,
			Action:        actionLabel(e.NewState),
			Timestamp:     e.Timestamp,
			SourceIP:      e.SourceIP,
		}
		if e.Duration != nil {
			m := msToMinutes(*e.Duration)
			rc.DurationMinutes = &m
		}
		out = append(out, rc)
	}
	return out
}

func actionLabel(occupied bool) string {
	if occupied {
		return "occupied"
	}
	return "available"
}

func newHourBuckets() []HourBucket {
	buckets := make([]HourBucket, 24)
	for h := range buckets {
		buckets[h] = HourBucket{Hour: h, Label: hourLabel(h)}
	}
	return buckets
}

// buildHourlyPattern counts events with Timestamp >= since into 24 civil-hour buckets.
func buildHourlyPattern(h repository.HistoryReader, since time.Time, offset time.Duration) []HourBucket {
	buckets := newHourBuckets()
	for _, e := range h.Since(since) {
		b := &buckets[civilHour(e.Timestamp, offset)]
		if e.IsOccupation() {
			b.Occupations++
		}
		if e.IsRelease() {
			b.Releases++
		}
	}
	for i := range buckets {
		buckets[i].NetChange = buckets[i].Occupations - buckets[i].Releases
		buckets[i].TotalActivity = buckets[i].Occupations + buckets[i].Releases
	}
	return buckets
}

// buildDailyPattern covers every civil date touched by the last seven days.
func buildDailyPattern(h repository.HistoryReader, now time.Time, offset time.Duration) []DayBucket {
	since := now.Add(-week)
	index := make(map[string]int)
	out := make([]DayBucket, 0, 8)
	for d := civilTime(since, offset); ; d = d.Add(day) {
		date := d.Format(civilDateLayout)
		index[date] = len(out)
		out = append(out, DayBucket{Date: date})
		if date == civilDate(now, offset) {
			break
		}
	}

	for _, e := range h.Since(since) {
		i, ok := index[civilDate(e.Timestamp, offset)]
		if !ok {
			continue
		}
		if e.IsOccupation() {
			out[i].Occupations++
		}
		if e.IsRelease() {
			out[i].Releases++
		}
		out[i].TotalActivity++
	}
	return out
}

// peakHours ranks buckets by total activity; equal totals keep hour order.
func peakHours(buckets []HourBucket, k int) []HourBucket {
	ranked := make([]HourBucket, len(buckets))
	copy(ranked, buckets)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalActivity > ranked[j].TotalActivity
	})
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}

func summarizeHours(hours []HourBucket, periodHours int) HourlySummary {
	var sum HourlySummary
	if len(hours) == 0 {
		return sum
	}
	busiest, quietest := hours[0], hours[0]
	for _, b := range hours {
		sum.TotalActivity += b.TotalActivity
		if b.TotalActivity > busiest.TotalActivity {
			busiest = b
		}
		if b.TotalActivity < quietest.TotalActivity {
			quietest = b
		}
	}
	sum.BusiestHour = busiest
	sum.QuietestHour = quietest
	if periodHours > 0 {
		sum.AveragePerHour = round1(float64(sum.TotalActivity) / float64(periodHours))
	}
	return sum
}
