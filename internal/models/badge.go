package models

import "time"

type BadgeType string

const (
	BadgeWeek    BadgeType = "week"
	BadgeMonth   BadgeType = "month"
	BadgeCentury BadgeType = "century"
	BadgeYear    BadgeType = "year"
)

// Milestone pairs a badge type with the streak length that earns it
type Milestone struct {
	Type BadgeType
	Days int
}

// Milestones lists every badge milestone in ascending threshold order
var Milestones = []Milestone{
	{Type: BadgeWeek, Days: 7},
	{Type: BadgeMonth, Days: 30},
	{Type: BadgeCentury, Days: 100},
	{Type: BadgeYear, Days: 365},
}

// Badge records a streak milestone reached by a habit. Each
// (habit_id, type) pair is awarded at most once.
type Badge struct {
	HabitID  string    `json:"habit_id"`
	Type     BadgeType `json:"type"`
	EarnedAt time.Time `json:"earned_at"`
}
