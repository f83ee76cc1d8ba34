package stats

import (
	"time"

	"ironlog/internal/models"
)

// DefaultActivityWindow is the trailing number of days shown on the
// consistency heatmap.
const DefaultActivityWindow = 60

// Intensity is the presentation bucket for a day's activity count.
type Intensity string

const (
	IntensityMinimal Intensity = "minimal"
	IntensityLow     Intensity = "low"
	IntensityMedium  Intensity = "medium"
	IntensityHigh    Intensity = "high"
)

// ActivityBucket is one calendar day's entry count within the window.
type ActivityBucket struct {
	Date      time.Time `json:"date"`
	Count     int       `json:"count"`
	Intensity Intensity `json:"intensity"`
}

// DailyCounts buckets a user's full log history into exactly window days
// ending at today inclusive, oldest first. Days without entries appear
// with count zero, so the result length is always window regardless of
// input size.
func DailyCounts(logs []models.Log, window int, today time.Time, loc *time.Location) []ActivityBucket {
	if window <= 0 {
		window = DefaultActivityWindow
	}
	if loc == nil {
		loc = time.UTC
	}

	counts := make(map[time.Time]int, len(logs))
	for _, l := range logs {
		counts[dayOf(l.DateLogged, loc)]++
	}

	end := dayOf(today, loc)
	buckets := make([]ActivityBucket, 0, window)
	for i := window - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		n := counts[day]
		buckets = append(buckets, ActivityBucket{
			Date:      day,
			Count:     n,
			Intensity: intensityFor(n),
		})
	}
	return buckets
}

// intensityFor maps a day's count to its heatmap intensity:
// 0 minimal, 1 low, 2-3 medium, above 3 high.
func intensityFor(count int) Intensity {
	switch {
	case count <= 0:
		return IntensityMinimal
	case count == 1:
		return IntensityLow
	case count <= 3:
		return IntensityMedium
	default:
		return IntensityHigh
	}
}
