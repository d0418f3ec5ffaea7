// Package backup keeps timestamped copies of the snapshot file under a
// backups/ directory beside it, with rotation and safe restore.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
)

const (
	stampMinute = "20060102-1504"
	stampSecond = "20060102-150405"
)

// BackupInfo describes one backup file.
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager copies the data file in and out of the backup directory.
type Manager struct {
	dataPath  string
	backupDir string
}

func NewManager(dataPath string) *Manager {
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(filepath.Dir(dataPath), constants.BackupDirName),
	}
}

// GetBackupDir returns the backup directory path.
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) ensureBackupDir() error {
	return os.MkdirAll(m.backupDir, 0700)
}

// CreateBackup copies the data file into the backup directory and
// rotates old backups past the retention limit.
func (m *Manager) CreateBackup() (string, error) {
	return m.copyIntoBackups(true)
}

func (m *Manager) copyIntoBackups(rotate bool) (string, error) {
	if err := m.ensureBackupDir(); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dataPath); os.IsNotExist(err) {
		return "", fmt.Errorf("data file does not exist: %s", m.dataPath)
	}

	backupPath, err := m.nextBackupPath(time.Now())
	if err != nil {
		return "", err
	}
	if err := copyFile(m.dataPath, backupPath); err != nil {
		return "", fmt.Errorf("failed to back up data file: %w", err)
	}

	if rotate {
		if err := m.rotateBackups(); err != nil {
			// A full backup already exists at this point, so rotation
			// trouble is only worth a warning
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}

	return backupPath, nil
}

// nextBackupPath picks an unused filename: minute precision first, then
// seconds, then a numeric collision counter.
func (m *Manager) nextBackupPath(now time.Time) (string, error) {
	candidate := m.backupFile(now.Format(stampMinute))
	if !exists(candidate) {
		return candidate, nil
	}

	stamp := now.Format(stampSecond)
	candidate = m.backupFile(stamp)
	if !exists(candidate) {
		return candidate, nil
	}

	for counter := 1; counter <= 100; counter++ {
		candidate = m.backupFile(fmt.Sprintf("%s-%d", stamp, counter))
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free backup filename for %s", stamp)
}

func (m *Manager) backupFile(stamp string) string {
	return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
}

// ListBackups returns all backups, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() ||
			!strings.HasPrefix(name, constants.BackupFilePrefix) ||
			!strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}

		timestamp, ok := parseStamp(name)
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{Path: path, Timestamp: timestamp, Size: info.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// parseStamp extracts the timestamp from a backup filename, tolerating
// the "-N" collision counter.
func parseStamp(name string) (time.Time, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	if i := strings.LastIndex(stamp, "-"); i > len("20060102") {
		// A trailing all-digit part that is not a 4- or 6-digit time
		// field is a collision counter
		tail := stamp[i+1:]
		if len(tail) != 4 && len(tail) != 6 && isDigits(tail) {
			stamp = stamp[:i]
		}
	}

	for _, layout := range []string{stampMinute, stampSecond} {
		if ts, err := time.Parse(layout, stamp); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the data file with the given backup. The
// current data file is backed up first, and the replacement happens
// through a temp file and an atomic rename.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verifyBackup(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.dataPath); err == nil {
		// Rotation is skipped here so the safety copy cannot evict the
		// backup being restored
		safety, err := m.copyIntoBackups(false)
		if err != nil {
			return fmt.Errorf("failed to back up current data before restore: %w", err)
		}
		fmt.Printf("Created backup of current data: %s\n", filepath.Base(safety))
	}

	tempPath := m.dataPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dataPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", tempPath, removeErr)
		}
		return fmt.Errorf("failed to restore data file: %w", err)
	}

	return nil
}

// verifyBackup checks that a backup file parses as a snapshot.
func (m *Manager) verifyBackup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var snapshot models.Snapshot
	return json.Unmarshal(data, &snapshot)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
