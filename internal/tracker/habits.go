package tracker

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkit/internal/models"
)

// AddHabit creates a habit from the given template, assigning a fresh
// id and creation timestamp. A zero Order appends the habit after the
// current display sequence; an empty frequency defaults to daily.
func (s *Store) AddHabit(habit models.Habit) (*models.Habit, error) {
	habit.ID = uuid.NewString()
	habit.CreatedAt = s.now()
	habit.Archived = false
	if habit.Frequency == "" {
		habit.Frequency = models.FrequencyDaily
	}
	if habit.Order == 0 {
		habit.Order = s.nextHabitOrder()
	}

	s.snapshot.Habits = append(s.snapshot.Habits, habit)
	if err := s.save(); err != nil {
		return nil, err
	}

	return &habit, nil
}

func (s *Store) nextHabitOrder() int {
	if len(s.snapshot.Habits) == 0 {
		return 1
	}
	max := 0
	for _, habit := range s.snapshot.Habits {
		if habit.Order > max {
			max = habit.Order
		}
	}
	return max + 1
}

// GetHabit returns the habit with the given id, or nil when absent.
// Archived habits are returned as well.
func (s *Store) GetHabit(id string) *models.Habit {
	for _, habit := range s.snapshot.Habits {
		if habit.ID == id {
			found := habit
			return &found
		}
	}
	return nil
}

// GetHabitByName returns the first habit whose name matches
// case-insensitively, or nil when none does.
func (s *Store) GetHabitByName(name string) *models.Habit {
	for _, habit := range s.snapshot.Habits {
		if strings.EqualFold(habit.Name, name) {
			found := habit
			return &found
		}
	}
	return nil
}

// GetHabits lists habits sorted ascending by display order, ties broken
// by insertion order. Archived habits are excluded unless requested.
func (s *Store) GetHabits(includeArchived bool) []models.Habit {
	habits := make([]models.Habit, 0, len(s.snapshot.Habits))
	for _, habit := range s.snapshot.Habits {
		if !includeArchived && habit.Archived {
			continue
		}
		habits = append(habits, habit)
	}

	sort.SliceStable(habits, func(i, j int) bool {
		return habits[i].Order < habits[j].Order
	})

	return habits
}

// UpdateHabit applies a partial update to the habit with the given id.
// The id itself is never changed. Returns nil when the habit is absent.
func (s *Store) UpdateHabit(id string, patch models.HabitPatch) (*models.Habit, error) {
	idx := s.habitIndex(id)
	if idx < 0 {
		return nil, nil
	}

	habit := &s.snapshot.Habits[idx]
	if patch.Name != nil {
		habit.Name = *patch.Name
	}
	if patch.Description != nil {
		habit.Description = *patch.Description
	}
	if patch.Emoji != nil {
		habit.Emoji = *patch.Emoji
	}
	if patch.Frequency != nil {
		habit.Frequency = *patch.Frequency
	}
	if patch.ClearCustomDays {
		habit.CustomDays = nil
	} else if patch.CustomDays != nil {
		habit.CustomDays = patch.CustomDays
	}
	if patch.ClearCategory {
		habit.CategoryID = nil
	} else if patch.CategoryID != nil {
		habit.CategoryID = patch.CategoryID
	}
	if patch.ClearGoal {
		habit.GoalDays = nil
	} else if patch.GoalDays != nil {
		habit.GoalDays = patch.GoalDays
	}
	if patch.Order != nil {
		habit.Order = *patch.Order
	}

	if err := s.save(); err != nil {
		return nil, err
	}

	updated := *habit
	return &updated, nil
}

// ArchiveHabit soft-deletes a habit. Its logs and badges survive, and
// it keeps its place in the order sequence. Returns nil when absent.
func (s *Store) ArchiveHabit(id string) (*models.Habit, error) {
	return s.setArchived(id, true)
}

// UnarchiveHabit restores an archived habit. Returns nil when absent.
func (s *Store) UnarchiveHabit(id string) (*models.Habit, error) {
	return s.setArchived(id, false)
}

func (s *Store) setArchived(id string, archived bool) (*models.Habit, error) {
	idx := s.habitIndex(id)
	if idx < 0 {
		return nil, nil
	}

	s.snapshot.Habits[idx].Archived = archived
	if err := s.save(); err != nil {
		return nil, err
	}

	updated := s.snapshot.Habits[idx]
	return &updated, nil
}

// DeleteHabit hard-deletes a habit along with every log and badge that
// references it. Returns false when the habit is absent.
func (s *Store) DeleteHabit(id string) (bool, error) {
	idx := s.habitIndex(id)
	if idx < 0 {
		return false, nil
	}

	s.snapshot.Habits = append(s.snapshot.Habits[:idx], s.snapshot.Habits[idx+1:]...)

	logs := s.snapshot.Logs[:0]
	for _, log := range s.snapshot.Logs {
		if log.HabitID != id {
			logs = append(logs, log)
		}
	}
	s.snapshot.Logs = logs

	badges := s.snapshot.Badges[:0]
	for _, badge := range s.snapshot.Badges {
		if badge.HabitID != id {
			badges = append(badges, badge)
		}
	}
	s.snapshot.Badges = badges

	if err := s.save(); err != nil {
		return true, err
	}

	return true, nil
}

// ReorderHabits assigns fresh order values following the given id
// sequence: the first id gets order 1, the second 2, and so on. Ids
// not found are skipped; habits not named keep their current order.
func (s *Store) ReorderHabits(ids []string) error {
	for position, id := range ids {
		if idx := s.habitIndex(id); idx >= 0 {
			s.snapshot.Habits[idx].Order = position + 1
		}
	}
	return s.save()
}

func (s *Store) habitIndex(id string) int {
	for i, habit := range s.snapshot.Habits {
		if habit.ID == id {
			return i
		}
	}
	return -1
}
