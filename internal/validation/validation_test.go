package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

func snapshotWithHabits(habits ...models.Habit) *models.Snapshot {
	snapshot := models.NewSnapshot()
	snapshot.Habits = habits
	return snapshot
}

func TestValidateSnapshot_CleanSnapshotHasNoConflicts(t *testing.T) {
	validator := New()

	categoryID := "cat-1"
	snapshot := models.NewSnapshot()
	snapshot.Categories = []models.Category{{ID: categoryID, Name: "Health", Color: "#ef4444"}}
	snapshot.Habits = []models.Habit{
		{ID: "h1", Name: "Stretch", Frequency: models.FrequencyDaily, CategoryID: &categoryID},
		{ID: "h2", Name: "Read", Frequency: models.FrequencyCustom, CustomDays: []time.Weekday{time.Monday}},
	}
	now := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	snapshot.Logs = []models.HabitLog{
		{HabitID: "h1", Day: "2024-01-01", Completed: true, CompletedAt: &now},
		{HabitID: "h1", Day: "2024-01-02", Completed: false},
	}
	snapshot.FreezeDays = []models.FreezeDay{{Day: "2024-01-03"}}
	snapshot.Badges = []models.Badge{{HabitID: "h1", Type: models.BadgeWeek, EarnedAt: now}}

	result := validator.ValidateSnapshot(snapshot)

	if result.HasConflicts() {
		t.Errorf("Expected no conflicts, got: %s", result.FormatReport())
	}
	if report := result.FormatReport(); report != "No problems found." {
		t.Errorf("Expected clean report, got %q", report)
	}
}

func TestValidateSnapshot_DuplicateHabitNames(t *testing.T) {
	validator := New()

	snapshot := snapshotWithHabits(
		models.Habit{ID: "h1", Name: "Stretch"},
		models.Habit{ID: "h2", Name: "Read"},
		models.Habit{ID: "h3", Name: "stretch"},
	)

	result := validator.ValidateSnapshot(snapshot)

	if len(result.Conflicts) != 1 {
		t.Fatalf("Expected 1 conflict, got %d: %s", len(result.Conflicts), result.FormatReport())
	}
	conflict := result.Conflicts[0]
	if conflict.Type != ConflictDuplicateHabitName {
		t.Errorf("Expected %s conflict, got %s", ConflictDuplicateHabitName, conflict.Type)
	}
	if len(conflict.HabitIDs) != 2 {
		t.Errorf("Expected 2 habit ids in conflict, got %v", conflict.HabitIDs)
	}
}

func TestValidateSnapshot_CustomFrequencyWithoutDays(t *testing.T) {
	validator := New()

	snapshot := snapshotWithHabits(
		models.Habit{ID: "h1", Name: "Read", Frequency: models.FrequencyCustom},
		models.Habit{ID: "h2", Name: "Run", Frequency: models.FrequencyCustom, CustomDays: []time.Weekday{time.Friday}},
	)

	result := validator.ValidateSnapshot(snapshot)

	if len(result.Conflicts) != 1 {
		t.Fatalf("Expected 1 conflict, got %d: %s", len(result.Conflicts), result.FormatReport())
	}
	if result.Conflicts[0].Type != ConflictMissingCustomDays {
		t.Errorf("Expected %s conflict, got %s", ConflictMissingCustomDays, result.Conflicts[0].Type)
	}
	if got := result.Conflicts[0].HabitIDs; len(got) != 1 || got[0] != "h1" {
		t.Errorf("Expected conflict to name h1, got %v", got)
	}
}

func TestValidateSnapshot_DanglingCategoryReference(t *testing.T) {
	validator := New()

	missing := "gone"
	snapshot := snapshotWithHabits(
		models.Habit{ID: "h1", Name: "Stretch", CategoryID: &missing},
	)

	result := validator.ValidateSnapshot(snapshot)

	if len(result.Conflicts) != 1 || result.Conflicts[0].Type != ConflictDanglingCategory {
		t.Fatalf("Expected a single %s conflict, got: %s", ConflictDanglingCategory, result.FormatReport())
	}
}

func TestValidateSnapshot_LogProblems(t *testing.T) {
	validator := New()

	stamp := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	snapshot := snapshotWithHabits(models.Habit{ID: "h1", Name: "Stretch"})
	snapshot.Logs = []models.HabitLog{
		{HabitID: "ghost", Day: "2024-01-01", Completed: true},
		{HabitID: "h1", Day: "Jan 2 2024", Completed: true},
		{HabitID: "h1", Day: "2024-01-03", Completed: true},
		{HabitID: "h1", Day: "2024-01-03", Completed: false},
		{HabitID: "h1", Day: "2024-01-04", Completed: false, CompletedAt: &stamp},
	}

	result := validator.ValidateSnapshot(snapshot)

	found := make(map[ConflictType]bool)
	for _, conflict := range result.Conflicts {
		found[conflict.Type] = true
	}
	for _, want := range []ConflictType{ConflictOrphanedLog, ConflictInvalidDay, ConflictDuplicateLog, ConflictStrayTimestamp} {
		if !found[want] {
			t.Errorf("Expected a %s conflict, got: %s", want, result.FormatReport())
		}
	}
}

func TestValidateSnapshot_FreezeDayProblems(t *testing.T) {
	validator := New()

	snapshot := models.NewSnapshot()
	snapshot.FreezeDays = []models.FreezeDay{
		{Day: "2024-01-05"},
		{Day: "2024-01-05"},
		{Day: "yesterday"},
	}

	result := validator.ValidateSnapshot(snapshot)

	found := make(map[ConflictType]bool)
	for _, conflict := range result.Conflicts {
		found[conflict.Type] = true
	}
	if !found[ConflictDuplicateFreeze] {
		t.Errorf("Expected a %s conflict, got: %s", ConflictDuplicateFreeze, result.FormatReport())
	}
	if !found[ConflictInvalidDay] {
		t.Errorf("Expected a %s conflict, got: %s", ConflictInvalidDay, result.FormatReport())
	}
}

func TestValidateSnapshot_BadgeProblems(t *testing.T) {
	validator := New()

	earned := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	snapshot := snapshotWithHabits(models.Habit{ID: "h1", Name: "Stretch"})
	snapshot.Badges = []models.Badge{
		{HabitID: "h1", Type: models.BadgeWeek, EarnedAt: earned},
		{HabitID: "h1", Type: models.BadgeWeek, EarnedAt: earned},
		{HabitID: "ghost", Type: models.BadgeMonth, EarnedAt: earned},
	}

	result := validator.ValidateSnapshot(snapshot)

	found := make(map[ConflictType]bool)
	for _, conflict := range result.Conflicts {
		found[conflict.Type] = true
	}
	if !found[ConflictDuplicateBadge] {
		t.Errorf("Expected a %s conflict, got: %s", ConflictDuplicateBadge, result.FormatReport())
	}
	if !found[ConflictOrphanedBadge] {
		t.Errorf("Expected a %s conflict, got: %s", ConflictOrphanedBadge, result.FormatReport())
	}
}

func TestValidateSnapshot_NilSnapshot(t *testing.T) {
	validator := New()

	result := validator.ValidateSnapshot(nil)

	if result.HasConflicts() {
		t.Errorf("Expected no conflicts for nil snapshot, got: %s", result.FormatReport())
	}
}

func TestFormatReport_ListsEveryConflict(t *testing.T) {
	validator := New()

	snapshot := snapshotWithHabits(
		models.Habit{ID: "h1", Name: "Stretch"},
		models.Habit{ID: "h2", Name: "Stretch"},
	)
	snapshot.Logs = []models.HabitLog{{HabitID: "ghost", Day: "2024-01-01", Completed: true}}

	result := validator.ValidateSnapshot(snapshot)
	report := result.FormatReport()

	if !strings.Contains(report, "Found 2 problem(s)") {
		t.Errorf("Expected report header naming 2 problems, got %q", report)
	}
	if !strings.Contains(report, string(ConflictDuplicateHabitName)) {
		t.Errorf("Expected report to mention %s, got %q", ConflictDuplicateHabitName, report)
	}
	if !strings.Contains(report, string(ConflictOrphanedLog)) {
		t.Errorf("Expected report to mention %s, got %q", ConflictOrphanedLog, report)
	}
}
