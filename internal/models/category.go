package models

import "time"

// Category groups habits for display and filtering
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"` // hex, e.g. #22c55e
	Emoji     string    `json:"emoji,omitempty"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryPatch carries optional field updates for a category
type CategoryPatch struct {
	Name  *string
	Color *string
	Emoji *string
	Order *int
}
