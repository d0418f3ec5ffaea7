package utils

import (
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
)

// ParseDay parses a date string in the standard format (YYYY-MM-DD).
func ParseDay(day string) (time.Time, error) {
	return time.Parse(constants.DateFormat, day)
}

// FormatDay formats a time as a date string in the standard format (YYYY-MM-DD).
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// MonthOf returns the calendar-month prefix (YYYY-MM) of a date string.
// The input is assumed to be a valid YYYY-MM-DD string.
func MonthOf(day string) string {
	if len(day) < len(constants.MonthFormat) {
		return day
	}
	return day[:len(constants.MonthFormat)]
}

// ValidateDayFormat checks if the string matches the standard date format.
func ValidateDayFormat(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}
