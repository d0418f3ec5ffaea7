package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habitkit/internal/models"
)

// Export serializes the entire snapshot as indented JSON.
func (s *Store) Export() (string, error) {
	data, err := json.MarshalIndent(s.snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return string(data), nil
}

// Import replaces the snapshot with the parsed payload and persists it.
// The payload must carry both a habits and a logs collection; newer
// fields that are missing (categories, freeze days, badges, version)
// are filled with defaults. On a parse or structure failure the current
// snapshot is left untouched.
func (s *Store) Import(data string) error {
	// Pointer probes distinguish an absent collection from an empty one
	var probe struct {
		Habits *[]models.Habit    `json:"habits"`
		Logs   *[]models.HabitLog `json:"logs"`
	}
	if err := json.Unmarshal([]byte(data), &probe); err != nil {
		return fmt.Errorf("failed to parse import data: %w", err)
	}
	if probe.Habits == nil {
		return fmt.Errorf("import data is missing the habits collection")
	}
	if probe.Logs == nil {
		return fmt.Errorf("import data is missing the logs collection")
	}

	snapshot := &models.Snapshot{}
	if err := json.Unmarshal([]byte(data), snapshot); err != nil {
		return fmt.Errorf("failed to parse import data: %w", err)
	}
	snapshot.Normalize()

	s.snapshot = snapshot
	return s.save()
}
