package tracker

import (
	"sort"

	"github.com/julianstephens/habitkit/internal/models"
)

// LogFilter narrows QueryLogs results. Zero-valued fields are ignored;
// StartDay and EndDay bound the range inclusively.
type LogFilter struct {
	HabitID  string
	StartDay string // YYYY-MM-DD format
	EndDay   string // YYYY-MM-DD format
}

// GetLog returns the log for the given habit and day, or nil when absent.
func (s *Store) GetLog(habitID, day string) *models.HabitLog {
	for _, log := range s.snapshot.Logs {
		if log.HabitID == habitID && log.Day == day {
			found := log
			return &found
		}
	}
	return nil
}

// QueryLogs returns logs matching the filter, sorted descending by day.
// Day comparisons are lexicographic, which matches chronological order
// for the fixed-width YYYY-MM-DD format.
func (s *Store) QueryLogs(filter LogFilter) []models.HabitLog {
	logs := []models.HabitLog{}
	for _, log := range s.snapshot.Logs {
		if filter.HabitID != "" && log.HabitID != filter.HabitID {
			continue
		}
		if filter.StartDay != "" && log.Day < filter.StartDay {
			continue
		}
		if filter.EndDay != "" && log.Day > filter.EndDay {
			continue
		}
		logs = append(logs, log)
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Day > logs[j].Day
	})

	return logs
}

// SetCompletion upserts the single log for the (habit, day) pair. The
// completion timestamp is stamped exactly when completed transitions to
// true, kept when already true, and cleared when set to false. A nil
// note leaves any existing note untouched.
func (s *Store) SetCompletion(habitID, day string, completed bool, note *string) (*models.HabitLog, error) {
	idx := -1
	for i, log := range s.snapshot.Logs {
		if log.HabitID == habitID && log.Day == day {
			idx = i
			break
		}
	}

	if idx < 0 {
		s.snapshot.Logs = append(s.snapshot.Logs, models.HabitLog{
			HabitID: habitID,
			Day:     day,
		})
		idx = len(s.snapshot.Logs) - 1
	}

	log := &s.snapshot.Logs[idx]
	if completed && !log.Completed {
		stamp := s.now()
		log.CompletedAt = &stamp
	}
	if !completed {
		log.CompletedAt = nil
	}
	log.Completed = completed
	if note != nil {
		log.Note = *note
	}

	if err := s.save(); err != nil {
		return nil, err
	}

	updated := *log
	return &updated, nil
}

// ToggleLog flips the completion state of the log for the given day,
// creating the log when missing. An empty day defaults to today.
func (s *Store) ToggleLog(habitID, day string) (*models.HabitLog, error) {
	if day == "" {
		day = s.Today()
	}

	completed := true
	if existing := s.GetLog(habitID, day); existing != nil {
		completed = !existing.Completed
	}

	return s.SetCompletion(habitID, day, completed, nil)
}
