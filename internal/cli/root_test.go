package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/tracker"
)

func newTestStore(t *testing.T) *tracker.Store {
	t.Helper()

	provider := storage.NewJSONStore(filepath.Join(t.TempDir(), "habitkit.json"))
	if err := provider.Init(); err != nil {
		t.Fatalf("failed to init storage: %v", err)
	}

	store, err := tracker.New(provider)
	if err != nil {
		t.Fatalf("failed to open tracker: %v", err)
	}

	return store
}

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []time.Weekday
	}{
		{"short names", "mon,thu", []time.Weekday{time.Monday, time.Thursday}},
		{"full names", "monday,friday", []time.Weekday{time.Monday, time.Friday}},
		{"mixed case with spaces", " Tue , SAT ", []time.Weekday{time.Tuesday, time.Saturday}},
		{"numbers", "0,6", []time.Weekday{time.Sunday, time.Saturday}},
		{"names and numbers", "sun,3", []time.Weekday{time.Sunday, time.Wednesday}},
		{"longer prefixes", "tues,satur", []time.Weekday{time.Tuesday, time.Saturday}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekdays(tt.input)
			if err != nil {
				t.Fatalf("ParseWeekdays(%q) returned error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseWeekdays(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseWeekdays_Invalid(t *testing.T) {
	for _, input := range []string{"", "someday", "mo", "7", "-1", "mon,funday"} {
		if _, err := ParseWeekdays(input); err == nil {
			t.Errorf("ParseWeekdays(%q) expected error, got none", input)
		}
	}
}

func TestFormatFrequency(t *testing.T) {
	tests := []struct {
		name  string
		habit models.Habit
		want  string
	}{
		{"daily", models.Habit{Frequency: models.FrequencyDaily}, "daily"},
		{"weekly default", models.Habit{Frequency: models.FrequencyWeekly}, "weekly on Sun"},
		{
			"weekly with days",
			models.Habit{Frequency: models.FrequencyWeekly, CustomDays: []time.Weekday{time.Monday, time.Thursday}},
			"weekly on Mon,Thu",
		},
		{
			"custom with days",
			models.Habit{Frequency: models.FrequencyCustom, CustomDays: []time.Weekday{time.Wednesday}},
			"on Wed",
		},
		{"custom without days", models.Habit{Frequency: models.FrequencyCustom}, "custom (no days set)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFrequency(tt.habit); got != tt.want {
				t.Errorf("FormatFrequency() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveHabit(t *testing.T) {
	store := newTestStore(t)

	added, err := store.AddHabit(models.Habit{Name: "Morning Run"})
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	// Name match is case-insensitive
	habit, err := ResolveHabit(store, "morning run")
	if err != nil {
		t.Fatalf("ResolveHabit by name returned error: %v", err)
	}
	if habit.ID != added.ID {
		t.Errorf("ResolveHabit by name = %q, want %q", habit.ID, added.ID)
	}

	habit, err = ResolveHabit(store, added.ID)
	if err != nil {
		t.Fatalf("ResolveHabit by id returned error: %v", err)
	}
	if habit.ID != added.ID {
		t.Errorf("ResolveHabit by id = %q, want %q", habit.ID, added.ID)
	}

	if _, err := ResolveHabit(store, "does-not-exist"); err == nil {
		t.Error("expected error for unknown habit reference")
	}
}

func TestResolveCategory(t *testing.T) {
	store := newTestStore(t)

	added, err := store.AddCategory(models.Category{Name: "Health"})
	if err != nil {
		t.Fatalf("failed to add category: %v", err)
	}

	category, err := ResolveCategory(store, "HEALTH")
	if err != nil {
		t.Fatalf("ResolveCategory by name returned error: %v", err)
	}
	if category.ID != added.ID {
		t.Errorf("ResolveCategory by name = %q, want %q", category.ID, added.ID)
	}

	category, err = ResolveCategory(store, added.ID)
	if err != nil {
		t.Fatalf("ResolveCategory by id returned error: %v", err)
	}
	if category.ID != added.ID {
		t.Errorf("ResolveCategory by id = %q, want %q", category.ID, added.ID)
	}

	if _, err := ResolveCategory(store, "does-not-exist"); err == nil {
		t.Error("expected error for unknown category reference")
	}
}

func TestContextTracker_ReusesStore(t *testing.T) {
	provider := storage.NewJSONStore(filepath.Join(t.TempDir(), "habitkit.json"))
	if err := provider.Init(); err != nil {
		t.Fatalf("failed to init storage: %v", err)
	}

	ctx := &Context{Provider: provider}

	first, err := ctx.Tracker()
	if err != nil {
		t.Fatalf("Tracker() returned error: %v", err)
	}
	second, err := ctx.Tracker()
	if err != nil {
		t.Fatalf("Tracker() returned error on second call: %v", err)
	}

	if first != second {
		t.Error("expected Tracker() to reuse the loaded store")
	}
}
