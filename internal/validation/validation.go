// Package validation checks a snapshot for integrity problems: duplicate
// habit names, dangling references, malformed dates, and ledger entries that
// can never take effect. It only reports; callers decide what to repair.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

// ConflictType identifies the kind of integrity problem found.
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictMissingCustomDays  ConflictType = "missing_custom_days"
	ConflictDanglingCategory   ConflictType = "dangling_category"
	ConflictOrphanedLog        ConflictType = "orphaned_log"
	ConflictOrphanedBadge      ConflictType = "orphaned_badge"
	ConflictInvalidDay         ConflictType = "invalid_day"
	ConflictDuplicateLog       ConflictType = "duplicate_log"
	ConflictDuplicateFreeze    ConflictType = "duplicate_freeze"
	ConflictDuplicateBadge     ConflictType = "duplicate_badge"
	ConflictStrayTimestamp     ConflictType = "stray_timestamp"
)

// Conflict describes a single integrity problem.
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string
	HabitIDs    []string
}

// ValidationResult holds the conflicts found in a snapshot.
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts reports whether any problems were found.
func (r *ValidationResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport renders the conflicts as a human-readable report.
func (r *ValidationResult) FormatReport() string {
	if !r.HasConflicts() {
		return "No problems found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problem(s):\n\n", len(r.Conflicts)))

	for i, conflict := range r.Conflicts {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, conflict.Type, conflict.Description))
		for _, item := range conflict.Items {
			sb.WriteString(fmt.Sprintf("   - %s\n", item))
		}
	}

	return sb.String()
}

// Validator checks snapshots for integrity problems.
type Validator struct{}

// New creates a validator.
func New() *Validator {
	return &Validator{}
}

// ValidateSnapshot runs every integrity check against the snapshot.
func (v *Validator) ValidateSnapshot(snapshot *models.Snapshot) ValidationResult {
	result := ValidationResult{}
	if snapshot == nil {
		return result
	}

	result.Conflicts = append(result.Conflicts, v.checkDuplicateHabitNames(snapshot.Habits)...)
	result.Conflicts = append(result.Conflicts, v.checkCustomDays(snapshot.Habits)...)
	result.Conflicts = append(result.Conflicts, v.checkCategoryRefs(snapshot)...)
	result.Conflicts = append(result.Conflicts, v.checkLogs(snapshot)...)
	result.Conflicts = append(result.Conflicts, v.checkFreezeDays(snapshot.FreezeDays)...)
	result.Conflicts = append(result.Conflicts, v.checkBadges(snapshot)...)

	return result
}

// checkDuplicateHabitNames finds habits sharing a name, ignoring case.
func (v *Validator) checkDuplicateHabitNames(habits []models.Habit) []Conflict {
	var conflicts []Conflict

	byName := make(map[string][]models.Habit)
	for _, habit := range habits {
		key := strings.ToLower(strings.TrimSpace(habit.Name))
		byName[key] = append(byName[key], habit)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		group := byName[name]
		if len(group) < 2 {
			continue
		}

		items := make([]string, 0, len(group))
		ids := make([]string, 0, len(group))
		for _, habit := range group {
			items = append(items, fmt.Sprintf("%q (id %s)", habit.Name, habit.ID))
			ids = append(ids, habit.ID)
		}

		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateHabitName,
			Description: fmt.Sprintf("%d habits named %q", len(group), group[0].Name),
			Items:       items,
			HabitIDs:    ids,
		})
	}

	return conflicts
}

// checkCustomDays finds custom-frequency habits with no days configured.
// Such habits are never due and silently stop counting against streaks.
func (v *Validator) checkCustomDays(habits []models.Habit) []Conflict {
	var conflicts []Conflict

	for _, habit := range habits {
		if habit.Frequency == models.FrequencyCustom && len(habit.CustomDays) == 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictMissingCustomDays,
				Description: fmt.Sprintf("habit %q has a custom frequency but no custom days", habit.Name),
				HabitIDs:    []string{habit.ID},
			})
		}
	}

	return conflicts
}

// checkCategoryRefs finds habits pointing at categories that do not exist.
func (v *Validator) checkCategoryRefs(snapshot *models.Snapshot) []Conflict {
	var conflicts []Conflict

	known := make(map[string]bool, len(snapshot.Categories))
	for _, category := range snapshot.Categories {
		known[category.ID] = true
	}

	for _, habit := range snapshot.Habits {
		if habit.CategoryID == nil || *habit.CategoryID == "" {
			continue
		}
		if !known[*habit.CategoryID] {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDanglingCategory,
				Description: fmt.Sprintf("habit %q references missing category %s", habit.Name, *habit.CategoryID),
				HabitIDs:    []string{habit.ID},
			})
		}
	}

	return conflicts
}

// checkLogs finds orphaned logs, malformed days, duplicate entries, and
// completion timestamps left on incomplete logs.
func (v *Validator) checkLogs(snapshot *models.Snapshot) []Conflict {
	var conflicts []Conflict

	known := make(map[string]bool, len(snapshot.Habits))
	for _, habit := range snapshot.Habits {
		known[habit.ID] = true
	}

	seen := make(map[string]int)
	var orphans []string
	var invalid []string
	var duplicates []string
	var stray []string

	for _, log := range snapshot.Logs {
		if !known[log.HabitID] {
			orphans = append(orphans, fmt.Sprintf("habit %s on %s", log.HabitID, log.Day))
		}
		if !utils.ValidateDayFormat(log.Day) {
			invalid = append(invalid, fmt.Sprintf("habit %s has day %q", log.HabitID, log.Day))
		}
		key := log.HabitID + "|" + log.Day
		seen[key]++
		if seen[key] == 2 {
			duplicates = append(duplicates, fmt.Sprintf("habit %s on %s", log.HabitID, log.Day))
		}
		if !log.Completed && log.CompletedAt != nil {
			stray = append(stray, fmt.Sprintf("habit %s on %s", log.HabitID, log.Day))
		}
	}

	if len(orphans) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictOrphanedLog,
			Description: fmt.Sprintf("%d log(s) reference habits that do not exist", len(orphans)),
			Items:       orphans,
		})
	}
	if len(invalid) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictInvalidDay,
			Description: fmt.Sprintf("%d log(s) have a malformed day", len(invalid)),
			Items:       invalid,
		})
	}
	if len(duplicates) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateLog,
			Description: fmt.Sprintf("%d duplicate habit/day log entries", len(duplicates)),
			Items:       duplicates,
		})
	}
	if len(stray) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictStrayTimestamp,
			Description: fmt.Sprintf("%d incomplete log(s) still carry a completion timestamp", len(stray)),
			Items:       stray,
		})
	}

	return conflicts
}

// checkFreezeDays finds malformed and duplicate freeze days.
func (v *Validator) checkFreezeDays(freezeDays []models.FreezeDay) []Conflict {
	var conflicts []Conflict

	seen := make(map[string]int)
	var invalid []string
	var duplicates []string

	for _, freeze := range freezeDays {
		if !utils.ValidateDayFormat(freeze.Day) {
			invalid = append(invalid, fmt.Sprintf("freeze day %q", freeze.Day))
		}
		seen[freeze.Day]++
		if seen[freeze.Day] == 2 {
			duplicates = append(duplicates, freeze.Day)
		}
	}

	if len(invalid) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictInvalidDay,
			Description: fmt.Sprintf("%d freeze day(s) have a malformed day", len(invalid)),
			Items:       invalid,
		})
	}
	if len(duplicates) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateFreeze,
			Description: fmt.Sprintf("%d freeze day(s) appear more than once", len(duplicates)),
			Items:       duplicates,
		})
	}

	return conflicts
}

// checkBadges finds orphaned and duplicate badges.
func (v *Validator) checkBadges(snapshot *models.Snapshot) []Conflict {
	var conflicts []Conflict

	known := make(map[string]bool, len(snapshot.Habits))
	for _, habit := range snapshot.Habits {
		known[habit.ID] = true
	}

	seen := make(map[string]int)
	var orphans []string
	var duplicates []string

	for _, badge := range snapshot.Badges {
		if !known[badge.HabitID] {
			orphans = append(orphans, fmt.Sprintf("%s badge for habit %s", badge.Type, badge.HabitID))
		}
		key := badge.HabitID + "|" + string(badge.Type)
		seen[key]++
		if seen[key] == 2 {
			duplicates = append(duplicates, fmt.Sprintf("%s badge for habit %s", badge.Type, badge.HabitID))
		}
	}

	if len(orphans) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictOrphanedBadge,
			Description: fmt.Sprintf("%d badge(s) reference habits that do not exist", len(orphans)),
			Items:       orphans,
		})
	}
	if len(duplicates) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateBadge,
			Description: fmt.Sprintf("%d badge(s) are duplicated", len(duplicates)),
			Items:       duplicates,
		})
	}

	return conflicts
}
