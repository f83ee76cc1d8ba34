package stats

import (
	"sort"
	"time"

	"ironlog/internal/models"
)

// ProgressPoint is the best lift on one calendar date: the heaviest set of
// that day with the reps it was performed at.
type ProgressPoint struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Reps   int       `json:"reps"`
	// OneRepMax is the Epley estimate for the best set of the day.
	OneRepMax float64 `json:"one_rep_max"`
}

// BestPerDay reduces one user's logs for a single lift into a
// chronological best-per-day series. Input order does not matter for the
// result: entries are grouped by calendar date in loc, the heaviest set of
// each day wins (first max wins on equal weight), and points are sorted
// ascending by the underlying date value rather than any formatted label.
// Empty input yields an empty series.
func BestPerDay(logs []models.Log, loc *time.Location) []ProgressPoint {
	if loc == nil {
		loc = time.UTC
	}

	// Stable order before grouping so first-max-wins is deterministic even
	// when callers hand us an unordered collection.
	ordered := make([]models.Log, len(logs))
	copy(ordered, logs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].DateLogged.Equal(ordered[j].DateLogged) {
			return ordered[i].DateLogged.Before(ordered[j].DateLogged)
		}
		return ordered[i].ID < ordered[j].ID
	})

	best := make(map[time.Time]ProgressPoint, len(ordered))
	for _, l := range ordered {
		day := dayOf(l.DateLogged, loc)
		cur, ok := best[day]
		if !ok || l.Weight > cur.Weight {
			best[day] = ProgressPoint{
				Date:      day,
				Weight:    l.Weight,
				Reps:      l.Reps,
				OneRepMax: EstimateOneRepMax(l.Weight, l.Reps),
			}
		}
	}

	points := make([]ProgressPoint, 0, len(best))
	for _, p := range best {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// dayOf truncates t to midnight of its calendar date in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
