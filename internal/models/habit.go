package models

import "time"

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Emoji       string         `json:"emoji,omitempty"`
	Frequency   Frequency      `json:"frequency"`
	CustomDays  []time.Weekday `json:"custom_days,omitempty"`
	CategoryID  *string        `json:"category_id,omitempty"`
	GoalDays    *int           `json:"goal_days,omitempty"`
	Order       int            `json:"order"`
	Archived    bool           `json:"archived"`
	CreatedAt   time.Time      `json:"created_at"`
}

// HabitLog represents a single day's record of a habit. Identity is the
// (habit_id, day) pair; at most one log exists per habit per calendar day.
type HabitLog struct {
	HabitID     string     `json:"habit_id"`
	Day         string     `json:"day"` // YYYY-MM-DD format
	Completed   bool       `json:"completed"`
	Note        string     `json:"note,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HabitPatch carries optional field updates for a habit. Nil fields are
// left untouched; the Clear flags reset the matching optional field.
type HabitPatch struct {
	Name            *string
	Description     *string
	Emoji           *string
	Frequency       *Frequency
	CustomDays      []time.Weekday
	ClearCustomDays bool
	CategoryID      *string
	ClearCategory   bool
	GoalDays        *int
	ClearGoal       bool
	Order           *int
}
