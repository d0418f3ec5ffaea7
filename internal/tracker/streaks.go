package tracker

import (
	"sort"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/utils"
)

// GetCurrentStreak computes the habit's current streak by walking
// backward one day at a time from today. An unchecked today does not
// break the streak: when today has no completed log the walk starts at
// yesterday instead. A completed day extends the streak; an incomplete
// day breaks it only when the habit is due that day, otherwise the day
// is skipped.
func (s *Store) GetCurrentStreak(habitID string) int {
	return s.currentStreak(habitID, false)
}

// GetCurrentStreakWithFreeze is GetCurrentStreak with the freeze ledger
// applied: a frozen day is skipped entirely, counting neither for nor
// against the streak, and a frozen today satisfies the bootstrap check
// just like a completed one.
func (s *Store) GetCurrentStreakWithFreeze(habitID string) int {
	return s.currentStreak(habitID, true)
}

func (s *Store) currentStreak(habitID string, freezeAware bool) int {
	habit := s.GetHabit(habitID)
	if habit == nil {
		return 0
	}

	completed := make(map[string]bool)
	for _, log := range s.snapshot.Logs {
		if log.HabitID == habitID && log.Completed {
			completed[log.Day] = true
		}
	}

	cursor := s.now()
	today := utils.FormatDay(cursor)
	satisfied := completed[today]
	if freezeAware && s.IsFrozen(today) {
		satisfied = true
	}
	if !satisfied {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	// Capped walk so malformed data can never loop forever
	for i := 0; i < constants.MaxStreakScanDays; i++ {
		day := utils.FormatDay(cursor)

		if freezeAware && s.IsFrozen(day) {
			cursor = cursor.AddDate(0, 0, -1)
			continue
		}

		if completed[day] {
			streak++
		} else if utils.IsDue(*habit, cursor) {
			break
		}

		cursor = cursor.AddDate(0, 0, -1)
	}

	return streak
}

// GetLongestStreak scans the habit's completed logs in date order and
// returns the longest run of strictly consecutive calendar days.
// Unlike the current-streak walk this is purely calendar based: due
// days and freeze days play no part here.
func (s *Store) GetLongestStreak(habitID string) int {
	days := []string{}
	for _, log := range s.snapshot.Logs {
		if log.HabitID == habitID && log.Completed {
			days = append(days, log.Day)
		}
	}
	if len(days) == 0 {
		return 0
	}

	sort.Strings(days)

	dates := make([]time.Time, 0, len(days))
	for _, day := range days {
		if date, err := utils.ParseDay(day); err == nil {
			dates = append(dates, date)
		}
	}
	if len(dates) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].AddDate(0, 0, 1).Equal(dates[i]) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	return longest
}

// GetTotalCompletions counts every completed log for the habit across
// all of history.
func (s *Store) GetTotalCompletions(habitID string) int {
	count := 0
	for _, log := range s.snapshot.Logs {
		if log.HabitID == habitID && log.Completed {
			count++
		}
	}
	return count
}
