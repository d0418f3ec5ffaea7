package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/habitkit/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	dir := t.TempDir()
	return NewJSONStore(filepath.Join(dir, "habitkit.json"))
}

func TestJSONStoreInitCreatesEmptySnapshot(t *testing.T) {
	store := newTestStore(t)

	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	snapshot, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if snapshot.Version != models.SnapshotVersion {
		t.Errorf("Expected version %d, got %d", models.SnapshotVersion, snapshot.Version)
	}
	if len(snapshot.Habits) != 0 || len(snapshot.Logs) != 0 {
		t.Error("Expected a fresh snapshot to have no habits or logs")
	}
	if snapshot.Categories == nil || snapshot.FreezeDays == nil || snapshot.Badges == nil {
		t.Error("Expected all collections to be initialized")
	}
}

func TestJSONStoreInitFailsWhenAlreadyInitialized(t *testing.T) {
	store := newTestStore(t)

	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if err := store.Init(); err == nil {
		t.Error("Expected second Init to fail")
	}
}

func TestJSONStoreLoadFailsWhenMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load()
	if err == nil {
		t.Fatal("Expected Load to fail before Init")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("Expected a not-initialized error, got: %v", err)
	}
}

func TestJSONStoreSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	createdAt := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	completedAt := time.Date(2026, 1, 16, 21, 5, 0, 0, time.UTC)
	categoryID := "cat-1"
	goal := 30

	snapshot := models.NewSnapshot()
	snapshot.Habits = []models.Habit{
		{
			ID:         "habit-1",
			Name:       "Read",
			Emoji:      "📚",
			Frequency:  models.FrequencyCustom,
			CustomDays: []time.Weekday{time.Monday, time.Thursday},
			CategoryID: &categoryID,
			GoalDays:   &goal,
			Order:      1,
			CreatedAt:  createdAt,
		},
	}
	snapshot.Logs = []models.HabitLog{
		{HabitID: "habit-1", Day: "2026-01-16", Completed: true, Note: "chapter 4", CompletedAt: &completedAt},
	}
	snapshot.Categories = []models.Category{
		{ID: "cat-1", Name: "Mind", Color: "#3b82f6", Order: 1, CreatedAt: createdAt},
	}
	snapshot.FreezeDays = []models.FreezeDay{
		{Day: "2026-01-10", Reason: "travel", CreatedAt: createdAt},
	}
	snapshot.Badges = []models.Badge{
		{HabitID: "habit-1", Type: models.BadgeWeek, EarnedAt: createdAt},
	}

	if err := store.Save(snapshot); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reopened := NewJSONStore(store.GetConfigPath())
	loaded, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(snapshot, loaded); diff != "" {
		t.Errorf("Snapshot mismatch after round trip (-want +got):\n%s", diff)
	}
}

func TestJSONStoreLoadNormalizesOlderSnapshots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "habitkit.json")

	// An older snapshot knows nothing about categories, freeze days or badges
	older := `{"habits": [], "logs": []}`
	if err := os.WriteFile(path, []byte(older), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	store := NewJSONStore(path)
	snapshot, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if snapshot.Version != models.SnapshotVersion {
		t.Errorf("Expected version to default to %d, got %d", models.SnapshotVersion, snapshot.Version)
	}
	if snapshot.Categories == nil || snapshot.FreezeDays == nil || snapshot.Badges == nil {
		t.Error("Expected missing collections to be default-filled")
	}
}

func TestJSONStoreLoadFailsOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "habitkit.json")

	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	store := NewJSONStore(path)
	if _, err := store.Load(); err == nil {
		t.Error("Expected Load to fail on corrupt data")
	}
}
