package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/backup"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/tracker"
)

// Context carries the storage provider and the lazily opened tracker
// engine shared by every command.
type Context struct {
	Provider storage.Provider
	Debug    bool

	store *tracker.Store
}

// Tracker loads the snapshot through the provider on first use. The
// init command bootstraps storage itself and never calls this.
func (c *Context) Tracker() (*tracker.Store, error) {
	if c.store == nil {
		store, err := tracker.New(c.Provider)
		if err != nil {
			return nil, err
		}
		c.store = store
	}
	return c.store, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Provider.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveHabit finds a habit by name (case-insensitive) or by id.
func ResolveHabit(store *tracker.Store, ref string) (*models.Habit, error) {
	if habit := store.GetHabitByName(ref); habit != nil {
		return habit, nil
	}
	if habit := store.GetHabit(ref); habit != nil {
		return habit, nil
	}
	return nil, fmt.Errorf("habit %q not found", ref)
}

// ResolveCategory finds a category by name (case-insensitive) or by id.
func ResolveCategory(store *tracker.Store, ref string) (*models.Category, error) {
	if category := store.GetCategoryByName(ref); category != nil {
		return category, nil
	}
	if category := store.GetCategory(ref); category != nil {
		return category, nil
	}
	return nil, fmt.Errorf("category %q not found", ref)
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var weekdays []time.Weekday
	for _, token := range strings.Split(s, ",") {
		wd, err := parseWeekday(token)
		if err != nil {
			return nil, err
		}
		weekdays = append(weekdays, wd)
	}
	return weekdays, nil
}

// parseWeekday resolves one token: a day name or any prefix of it with
// at least three letters, or a number with 0 as Sunday.
func parseWeekday(token string) (time.Weekday, error) {
	token = strings.TrimSpace(strings.ToLower(token))

	if n, err := strconv.Atoi(token); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("invalid weekday: %s", token)
		}
		return time.Weekday(n), nil
	}

	if len(token) >= 3 {
		for d := time.Sunday; d <= time.Saturday; d++ {
			if strings.HasPrefix(strings.ToLower(d.String()), token) {
				return d, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid weekday: %s", token)
}

// FormatFrequency formats a habit's schedule into a human-readable string
func FormatFrequency(habit models.Habit) string {
	days := func() string {
		var names []string
		for _, wd := range habit.CustomDays {
			names = append(names, wd.String()[:3])
		}
		return strings.Join(names, ",")
	}

	switch habit.Frequency {
	case models.FrequencyDaily:
		return "daily"
	case models.FrequencyWeekly:
		if len(habit.CustomDays) > 0 {
			return fmt.Sprintf("weekly on %s", days())
		}
		return "weekly on Sun"
	case models.FrequencyCustom:
		if len(habit.CustomDays) > 0 {
			return fmt.Sprintf("on %s", days())
		}
		return "custom (no days set)"
	default:
		return "unknown"
	}
}
