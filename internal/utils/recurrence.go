package utils

import (
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

// IsDue determines if a habit requires action on the given date based
// on its frequency. This logic is shared between the streak and
// statistics engines to ensure consistency.
func IsDue(habit models.Habit, date time.Time) bool {
	switch habit.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		days := habit.CustomDays
		if len(days) == 0 {
			// Weekly habits without an explicit day set default to Sunday
			days = []time.Weekday{time.Sunday}
		}
		return containsWeekday(days, date.Weekday())
	case models.FrequencyCustom:
		// Custom habits without a day set are never due
		return containsWeekday(habit.CustomDays, date.Weekday())
	default:
		return false
	}
}

func containsWeekday(days []time.Weekday, wd time.Weekday) bool {
	for _, d := range days {
		if d == wd {
			return true
		}
	}
	return false
}
