package models

import "time"

// FreezeDay excuses a calendar day from streak-breaking evaluation.
// At most one entry exists per day.
type FreezeDay struct {
	Day       string    `json:"day"` // YYYY-MM-DD format
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
