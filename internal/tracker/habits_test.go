package tracker

import (
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

func TestAddHabitAssignsIdentityAndDefaults(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")

	habit, err := store.AddHabit(models.Habit{Name: "Read"})
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	if habit.ID == "" {
		t.Error("Expected a generated id")
	}
	if habit.CreatedAt.IsZero() {
		t.Error("Expected a creation timestamp")
	}
	if habit.Frequency != models.FrequencyDaily {
		t.Errorf("Expected empty frequency to default to daily, got %s", habit.Frequency)
	}
	if habit.Order != 1 {
		t.Errorf("Expected first habit to get order 1, got %d", habit.Order)
	}
	if habit.Archived {
		t.Error("Expected new habit not to be archived")
	}
}

func TestAddHabitAppendsAfterMaxOrder(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")

	first, _ := store.AddHabit(models.Habit{Name: "Read"})
	if first.Order != 1 {
		t.Fatalf("Expected first order 1, got %d", first.Order)
	}

	// Push the first habit's order up, the next habit must still append last
	order := 10
	if _, err := store.UpdateHabit(first.ID, models.HabitPatch{Order: &order}); err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}

	second, _ := store.AddHabit(models.Habit{Name: "Run"})
	if second.Order != 11 {
		t.Errorf("Expected second habit to get order 11, got %d", second.Order)
	}
}

func TestGetHabitAbsentReturnsNil(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")

	if got := store.GetHabit("no-such-id"); got != nil {
		t.Errorf("Expected nil for unknown id, got %+v", got)
	}
}

func TestGetHabitByNameIsCaseInsensitive(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")
	store.AddHabit(models.Habit{Name: "Morning Pages"})

	if got := store.GetHabitByName("morning pages"); got == nil {
		t.Error("Expected case-insensitive name lookup to find the habit")
	}
	if got := store.GetHabitByName("evening pages"); got != nil {
		t.Error("Expected lookup of unknown name to return nil")
	}
}

func TestGetHabitsSortsByOrderStable(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")

	a, _ := store.AddHabit(models.Habit{Name: "A", Order: 2})
	b, _ := store.AddHabit(models.Habit{Name: "B", Order: 1})
	c, _ := store.AddHabit(models.Habit{Name: "C", Order: 2})

	habits := store.GetHabits(false)
	if len(habits) != 3 {
		t.Fatalf("Expected 3 habits, got %d", len(habits))
	}

	// B first by order; A before C because ties keep insertion order
	if habits[0].ID != b.ID || habits[1].ID != a.ID || habits[2].ID != c.ID {
		t.Errorf("Expected order B, A, C; got %s, %s, %s", habits[0].Name, habits[1].Name, habits[2].Name)
	}
}

func TestGetHabitsExcludesArchivedByDefault(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")

	keep, _ := store.AddHabit(models.Habit{Name: "Keep"})
	gone, _ := store.AddHabit(models.Habit{Name: "Gone"})
	if _, err := store.ArchiveHabit(gone.ID); err != nil {
		t.Fatalf("ArchiveHabit failed: %v", err)
	}

	active := store.GetHabits(false)
	if len(active) != 1 || active[0].ID != keep.ID {
		t.Errorf("Expected only the active habit, got %d habits", len(active))
	}

	all := store.GetHabits(true)
	if len(all) != 2 {
		t.Errorf("Expected both habits when including archived, got %d", len(all))
	}
}

func TestUpdateHabitAppliesPatchAndPreservesIdentity(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")

	habit, _ := store.AddHabit(models.Habit{Name: "Read", Description: "20 pages"})

	name := "Read more"
	frequency := models.FrequencyCustom
	days := []time.Weekday{time.Monday, time.Wednesday}
	goal := 30
	updated, err := store.UpdateHabit(habit.ID, models.HabitPatch{
		Name:       &name,
		Frequency:  &frequency,
		CustomDays: days,
		GoalDays:   &goal,
	})
	if err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}

	if updated.ID != habit.ID {
		t.Error("Expected the habit id to be immutable")
	}
	if updated.Name != "Read more" {
		t.Errorf("Expected name to change, got %q", updated.Name)
	}
	if updated.Description != "20 pages" {
		t.Errorf("Expected unpatched description to be untouched, got %q", updated.Description)
	}
	if updated.Frequency != models.FrequencyCustom || len(updated.CustomDays) != 2 {
		t.Error("Expected frequency and custom days to be applied")
	}
	if updated.GoalDays == nil || *updated.GoalDays != 30 {
		t.Error("Expected goal to be applied")
	}
	if !updated.CreatedAt.Equal(habit.CreatedAt) {
		t.Error("Expected creation timestamp to be untouched")
	}
}

func TestUpdateHabitClearFlags(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")

	category, _ := store.AddCategory(models.Category{Name: "Mind"})
	goal := 30
	habit, _ := store.AddHabit(models.Habit{
		Name:       "Read",
		Frequency:  models.FrequencyCustom,
		CustomDays: []time.Weekday{time.Monday},
		CategoryID: &category.ID,
		GoalDays:   &goal,
	})

	updated, err := store.UpdateHabit(habit.ID, models.HabitPatch{
		ClearCustomDays: true,
		ClearCategory:   true,
		ClearGoal:       true,
	})
	if err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}

	if updated.CustomDays != nil {
		t.Error("Expected custom days to be cleared")
	}
	if updated.CategoryID != nil {
		t.Error("Expected category reference to be cleared")
	}
	if updated.GoalDays != nil {
		t.Error("Expected goal to be cleared")
	}
}

func TestUpdateHabitAbsentReturnsNil(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")

	name := "anything"
	updated, err := store.UpdateHabit("no-such-id", models.HabitPatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	if updated != nil {
		t.Errorf("Expected nil result for unknown id, got %+v", updated)
	}
}

func TestArchiveAndUnarchiveHabit(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")

	habit, _ := store.AddHabit(models.Habit{Name: "Read"})

	archived, err := store.ArchiveHabit(habit.ID)
	if err != nil {
		t.Fatalf("ArchiveHabit failed: %v", err)
	}
	if !archived.Archived {
		t.Error("Expected habit to be archived")
	}

	restored, err := store.UnarchiveHabit(habit.ID)
	if err != nil {
		t.Fatalf("UnarchiveHabit failed: %v", err)
	}
	if restored.Archived {
		t.Error("Expected habit to be unarchived")
	}

	if got, _ := store.ArchiveHabit("no-such-id"); got != nil {
		t.Error("Expected nil when archiving unknown id")
	}
}

func TestDeleteHabitCascadesLogsAndBadges(t *testing.T) {
	store := newTestTracker(t, "2024-01-10")

	habit, _ := store.AddHabit(models.Habit{Name: "Read"})
	other, _ := store.AddHabit(models.Habit{Name: "Run"})

	for _, day := range []string{"2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09"} {
		if _, err := store.SetCompletion(habit.ID, day, true, nil); err != nil {
			t.Fatalf("SetCompletion failed: %v", err)
		}
	}
	store.SetCompletion(other.ID, "2024-01-09", true, nil)

	if _, err := store.CheckAndAwardBadges(habit.ID); err != nil {
		t.Fatalf("CheckAndAwardBadges failed: %v", err)
	}
	if len(store.GetBadges(habit.ID)) == 0 {
		t.Fatal("Expected the habit to have earned a badge before deletion")
	}

	deleted, err := store.DeleteHabit(habit.ID)
	if err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if !deleted {
		t.Fatal("Expected DeleteHabit to report the habit as found")
	}

	if got := len(store.QueryLogs(LogFilter{HabitID: habit.ID})); got != 0 {
		t.Errorf("Expected all logs of the deleted habit to be removed, found %d", got)
	}
	if got := len(store.GetBadges(habit.ID)); got != 0 {
		t.Errorf("Expected all badges of the deleted habit to be removed, found %d", got)
	}

	// The other habit's data survives
	if got := len(store.QueryLogs(LogFilter{HabitID: other.ID})); got != 1 {
		t.Errorf("Expected the other habit's log to survive, found %d", got)
	}
}

func TestDeleteHabitAbsentReturnsFalse(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")

	deleted, err := store.DeleteHabit("no-such-id")
	if err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if deleted {
		t.Error("Expected false for unknown id")
	}
}

func TestReorderHabits(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")

	a, _ := store.AddHabit(models.Habit{Name: "A"})
	b, _ := store.AddHabit(models.Habit{Name: "B"})
	c, _ := store.AddHabit(models.Habit{Name: "C"})

	if err := store.ReorderHabits([]string{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("ReorderHabits failed: %v", err)
	}

	habits := store.GetHabits(false)
	if habits[0].ID != c.ID || habits[1].ID != a.ID || habits[2].ID != b.ID {
		t.Errorf("Expected order C, A, B; got %s, %s, %s", habits[0].Name, habits[1].Name, habits[2].Name)
	}
}

func TestReorderHabitsSkipsUnknownIds(t *testing.T) {
	store := newTestTracker(t, "2024-01-08")

	a, _ := store.AddHabit(models.Habit{Name: "A"})
	b, _ := store.AddHabit(models.Habit{Name: "B"})

	if err := store.ReorderHabits([]string{b.ID, "no-such-id", a.ID}); err != nil {
		t.Fatalf("ReorderHabits failed: %v", err)
	}

	habits := store.GetHabits(false)
	if habits[0].ID != b.ID || habits[1].ID != a.ID {
		t.Errorf("Expected order B, A; got %s, %s", habits[0].Name, habits[1].Name)
	}
}
