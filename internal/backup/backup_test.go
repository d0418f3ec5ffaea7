package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
)

// newTestManager seeds a data file with two habits and returns a
// manager pointed at it.
func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()

	dataPath := filepath.Join(t.TempDir(), "habitkit.json")

	snapshot := models.NewSnapshot()
	snapshot.Habits = []models.Habit{
		{ID: "h1", Name: "Stretch", Frequency: models.FrequencyDaily},
		{ID: "h2", Name: "Read", Frequency: models.FrequencyDaily},
	}
	writeSnapshot(t, dataPath, snapshot)

	return NewManager(dataPath), dataPath
}

func writeSnapshot(t *testing.T, path string, snapshot *models.Snapshot) {
	t.Helper()

	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write snapshot file: %v", err)
	}
}

func snapshotAt(t *testing.T, path string) *models.Snapshot {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read snapshot file: %v", err)
	}
	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		t.Fatalf("failed to parse snapshot file: %v", err)
	}
	return &snapshot
}

func mustBackup(t *testing.T, mgr *Manager) string {
	t.Helper()

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	return path
}

func mustList(t *testing.T, mgr *Manager) []BackupInfo {
	t.Helper()

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	return backups
}

func TestCreateBackupCopiesDataFile(t *testing.T) {
	mgr, _ := newTestManager(t)

	backupPath := mustBackup(t, mgr)

	if _, err := os.Stat(backupPath); err != nil {
		t.Fatalf("Expected backup file at %s: %v", backupPath, err)
	}
	if got := snapshotAt(t, backupPath); len(got.Habits) != 2 {
		t.Errorf("Expected 2 habits in backup, got %d", len(got.Habits))
	}
}

func TestCreateBackupFailsWithoutDataFile(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "habitkit.json"))

	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("Expected CreateBackup to fail when the data file does not exist")
	}
}

func TestListBackupsStartsEmpty(t *testing.T) {
	mgr, _ := newTestManager(t)

	if backups := mustList(t, mgr); len(backups) != 0 {
		t.Errorf("Expected no backups before the first create, got %d", len(backups))
	}
}

func TestListBackupsDescribesEachFile(t *testing.T) {
	mgr, _ := newTestManager(t)

	for i := 0; i < 3; i++ {
		mustBackup(t, mgr)
		time.Sleep(10 * time.Millisecond)
	}

	backups := mustList(t, mgr)
	if len(backups) != 3 {
		t.Fatalf("Expected 3 backups, got %d", len(backups))
	}
	for i, b := range backups {
		if b.Path == "" || b.Size == 0 || b.Timestamp.IsZero() {
			t.Errorf("Expected backup %d to have path, size, and timestamp, got %+v", i, b)
		}
	}
}

func TestRotationCapsStoredBackups(t *testing.T) {
	mgr, _ := newTestManager(t)

	// Spread the stamps so the newest-first assertion is meaningful
	for i := 0; i < constants.MaxBackups+5; i++ {
		mustBackup(t, mgr)
		time.Sleep(10 * time.Millisecond)
	}

	backups := mustList(t, mgr)
	if len(backups) != constants.MaxBackups {
		t.Errorf("Expected rotation to keep %d backups, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("Expected newest-first order, but backup %d is newer than backup %d", i, i-1)
		}
	}
}

func TestRestoreBringsBackOldData(t *testing.T) {
	mgr, dataPath := newTestManager(t)

	backupPath := mustBackup(t, mgr)

	grown := snapshotAt(t, dataPath)
	grown.Habits = append(grown.Habits, models.Habit{ID: "h3", Name: "Run"})
	writeSnapshot(t, dataPath, grown)

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := snapshotAt(t, dataPath); len(got.Habits) != 2 {
		t.Errorf("Expected restore to roll back to 2 habits, got %d", len(got.Habits))
	}
}

func TestRestoreAddsSafetyCopy(t *testing.T) {
	mgr, _ := newTestManager(t)

	backupPath := mustBackup(t, mgr)
	before := len(mustList(t, mgr))

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	if after := len(mustList(t, mgr)); after != before+1 {
		t.Errorf("Expected exactly one pre-restore copy, went from %d to %d backups", before, after)
	}
}

func TestRestoreRefusesCorruptBackup(t *testing.T) {
	mgr, dataPath := newTestManager(t)

	if err := mgr.ensureBackupDir(); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	corruptPath := filepath.Join(mgr.GetBackupDir(), constants.BackupFilePrefix+"20240101-0900"+constants.BackupFileSuffix)
	if err := os.WriteFile(corruptPath, []byte("{broken"), 0600); err != nil {
		t.Fatalf("failed to write corrupt backup: %v", err)
	}

	if err := mgr.RestoreBackup(corruptPath); err == nil {
		t.Error("Expected RestoreBackup to reject a corrupt backup")
	}
	if got := snapshotAt(t, dataPath); len(got.Habits) != 2 {
		t.Errorf("Expected data file untouched with 2 habits, got %d", len(got.Habits))
	}
}

func TestVerifyBackupChecksSnapshotShape(t *testing.T) {
	mgr, _ := newTestManager(t)

	backupPath := mustBackup(t, mgr)
	if err := mgr.verifyBackup(backupPath); err != nil {
		t.Errorf("verifyBackup failed for a valid backup: %v", err)
	}

	garbage := filepath.Join(mgr.GetBackupDir(), "invalid.bak")
	if err := os.WriteFile(garbage, []byte("not a snapshot"), 0600); err != nil {
		t.Fatalf("failed to write garbage file: %v", err)
	}
	if err := mgr.verifyBackup(garbage); err == nil {
		t.Error("Expected verifyBackup to reject an unparsable file")
	}
}

func TestRapidBackupsGetDistinctNames(t *testing.T) {
	mgr, _ := newTestManager(t)

	// No sleeps: collisions must be resolved by the seconds stamp and
	// the counter suffix
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		name := filepath.Base(mustBackup(t, mgr))
		if seen[name] {
			t.Errorf("Expected distinct backup filenames, got %s twice", name)
		}
		seen[name] = true
	}
}

func TestParseStampHandlesCounterSuffix(t *testing.T) {
	tests := []struct {
		name  string
		stamp string
		ok    bool
		want  time.Time
	}{
		{"minute precision", "20240101-0900", true, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{"second precision", "20240101-090003", true, time.Date(2024, 1, 1, 9, 0, 3, 0, time.UTC)},
		{"collision counter", "20240101-090003-2", true, time.Date(2024, 1, 1, 9, 0, 3, 0, time.UTC)},
		{"double digit counter", "20240101-0900-12", true, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{"garbage", "not-a-stamp", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := constants.BackupFilePrefix + tt.stamp + constants.BackupFileSuffix
			got, ok := parseStamp(name)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v for %q, got %v", tt.ok, name, ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Expected %v for %q, got %v", tt.want, name, got)
			}
		})
	}
}
