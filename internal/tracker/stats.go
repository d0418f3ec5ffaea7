package tracker

import (
	"github.com/julianstephens/habitkit/internal/utils"
)

// FrozenTrendValue is the sentinel a trend point carries for a frozen
// day; it takes priority over the day's completion state.
const FrozenTrendValue = -1

// TrendPoint is one day of a habit's completion trend: 100 for a
// completed day, 0 for an incomplete one, FrozenTrendValue when frozen.
type TrendPoint struct {
	Day   string `json:"day"` // YYYY-MM-DD format
	Value int    `json:"value"`
}

// GetCompletionRate returns the percentage of days completed over the
// trailing window of the given length ending today (inclusive). The
// denominator is the window length, not the habit's due days. A
// non-positive window yields 0.
func (s *Store) GetCompletionRate(habitID string, days int) float64 {
	if days <= 0 {
		return 0
	}

	start := utils.FormatDay(s.now().AddDate(0, 0, -(days - 1)))
	end := s.Today()

	count := 0
	for _, log := range s.snapshot.Logs {
		if log.HabitID == habitID && log.Completed && log.Day >= start && log.Day <= end {
			count++
		}
	}

	return float64(count) / float64(days) * 100
}

// GetWeekdayPerformance returns per-weekday completion percentages over
// the trailing window, indexed by time.Weekday (Sunday = 0). The
// denominator for each weekday is how often it occurs in the window.
func (s *Store) GetWeekdayPerformance(habitID string, days int) [7]float64 {
	var result [7]float64
	if days <= 0 {
		return result
	}

	completed := make(map[string]bool)
	for _, log := range s.snapshot.Logs {
		if log.HabitID == habitID && log.Completed {
			completed[log.Day] = true
		}
	}

	var occurrences, completions [7]int
	cursor := s.now().AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		weekday := int(cursor.Weekday())
		occurrences[weekday]++
		if completed[utils.FormatDay(cursor)] {
			completions[weekday]++
		}
		cursor = cursor.AddDate(0, 0, 1)
	}

	for weekday := 0; weekday < 7; weekday++ {
		if occurrences[weekday] > 0 {
			result[weekday] = float64(completions[weekday]) / float64(occurrences[weekday]) * 100
		}
	}

	return result
}

// GetCompletionTrend returns one point per day over the trailing
// window, oldest first.
func (s *Store) GetCompletionTrend(habitID string, days int) []TrendPoint {
	if days <= 0 {
		return []TrendPoint{}
	}

	completed := make(map[string]bool)
	for _, log := range s.snapshot.Logs {
		if log.HabitID == habitID && log.Completed {
			completed[log.Day] = true
		}
	}

	points := make([]TrendPoint, 0, days)
	cursor := s.now().AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		day := utils.FormatDay(cursor)
		value := 0
		switch {
		case s.IsFrozen(day):
			value = FrozenTrendValue
		case completed[day]:
			value = 100
		}
		points = append(points, TrendPoint{Day: day, Value: value})
		cursor = cursor.AddDate(0, 0, 1)
	}

	return points
}
