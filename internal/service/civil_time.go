package service

import (
	"fmt"
	"math"
	"time"
)

// DefaultCivilOffset is the fixed UTC+7 (WIB) offset used for bucketing.
const DefaultCivilOffset = 7 * time.Hour

const civilDateLayout = "2006-01-02"

// civilTime shifts an instant by a fixed offset. No zone database, no DST.
func civilTime(t time.Time, offset time.Duration) time.Time {
	return t.UTC().Add(offset)
}

func civilHour(t time.Time, offset time.Duration) int {
	return civilTime(t, offset).Hour()
}

func civilDate(t time.Time, offset time.Duration) string {
	return civilTime(t, offset).Format(civilDateLayout)
}

func hourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// occupancyRate is occupied/total as a percentage with one decimal; 0 when total is 0.
func occupancyRate(occupied, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round1(float64(occupied) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// msToMinutes rounds a millisecond duration to whole minutes.
func msToMinutes(ms int64) int64 {
	return int64(math.Round(float64(ms) / 60000))
}
