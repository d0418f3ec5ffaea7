package storage

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/logger"
)

var findProcessFunc = ps.FindProcess

// ErrLocked is returned when another live process holds the session lock
var ErrLocked = errors.New("data file is locked by another habitkit process")

// SessionLock guards a data file against concurrent writers. The
// snapshot model assumes exclusive single-threaded access, so each
// invocation takes the lock before mutating and releases it on exit.
type SessionLock struct {
	path string
	held bool
}

// NewSessionLock returns a lock guarding the given data file.
func NewSessionLock(dataPath string) *SessionLock {
	return &SessionLock{path: dataPath + constants.LockFileSuffix}
}

// Acquire takes the lock, replacing a stale lock left by a dead process.
// Returns ErrLocked when another live process holds it.
func (l *SessionLock) Acquire() error {
	if pid, ok := l.readHolder(); ok {
		if processAlive(pid) {
			return fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
		logger.Warn("Removing stale session lock", "path", l.path, "pid", pid)
	}

	content := fmt.Sprintf("%d|%s", os.Getpid(), constants.AppName)
	if err := os.WriteFile(l.path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write session lock: %w", err)
	}
	l.held = true

	return nil
}

// Release removes the lockfile if this process holds it.
func (l *SessionLock) Release() error {
	if !l.held {
		return nil
	}
	l.held = false

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session lock: %w", err)
	}

	return nil
}

// Path returns the lockfile location.
func (l *SessionLock) Path() string {
	return l.path
}

// Status reports the recorded lock holder and whether that process is
// still running. ok is false when no lockfile is present.
func (l *SessionLock) Status() (pid int, alive bool, ok bool) {
	pid, ok = l.readHolder()
	if !ok {
		return 0, false, false
	}
	return pid, processAlive(pid), true
}

// readHolder parses the pid recorded in the lockfile. ok is false when
// the lockfile is missing or malformed; a malformed lock is treated as
// stale and overwritten.
func (l *SessionLock) readHolder() (int, bool) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		return 0, false
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, false
	}

	pid, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}

	return pid, true
}

func processAlive(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	// A dead holder's pid may have been reused by an unrelated process;
	// only treat it as live when the executable looks like ours
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
