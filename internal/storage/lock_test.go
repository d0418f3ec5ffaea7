package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid        int
	executable string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 0 }
func (p fakeProcess) Executable() string { return p.executable }

func stubFindProcess(t *testing.T, fn func(pid int) (ps.Process, error)) {
	t.Helper()
	original := findProcessFunc
	findProcessFunc = fn
	t.Cleanup(func() { findProcessFunc = original })
}

func TestSessionLockAcquireRelease(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "habitkit.json")
	lock := NewSessionLock(dataPath)

	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Errorf("Expected lockfile to exist after Acquire: %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Error("Expected lockfile to be removed after Release")
	}
}

func TestSessionLockBlocksLiveHolder(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "habitkit.json")
	lock := NewSessionLock(dataPath)

	if err := os.WriteFile(lock.Path(), []byte("4242|habitkit"), 0600); err != nil {
		t.Fatalf("failed to write lockfile: %v", err)
	}

	stubFindProcess(t, func(pid int) (ps.Process, error) {
		return fakeProcess{pid: pid, executable: "habitkit"}, nil
	})

	err := lock.Acquire()
	if !errors.Is(err, ErrLocked) {
		t.Errorf("Expected ErrLocked when holder is alive, got: %v", err)
	}
}

func TestSessionLockReplacesStaleLock(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "habitkit.json")
	lock := NewSessionLock(dataPath)

	if err := os.WriteFile(lock.Path(), []byte("4242|habitkit"), 0600); err != nil {
		t.Fatalf("failed to write lockfile: %v", err)
	}

	// Holder process is gone
	stubFindProcess(t, func(pid int) (ps.Process, error) {
		return nil, nil
	})

	if err := lock.Acquire(); err != nil {
		t.Errorf("Expected stale lock to be replaced, got: %v", err)
	}
}

func TestSessionLockIgnoresReusedPid(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "habitkit.json")
	lock := NewSessionLock(dataPath)

	if err := os.WriteFile(lock.Path(), []byte("4242|habitkit"), 0600); err != nil {
		t.Fatalf("failed to write lockfile: %v", err)
	}

	// The pid is alive but belongs to an unrelated process
	stubFindProcess(t, func(pid int) (ps.Process, error) {
		return fakeProcess{pid: pid, executable: "vim"}, nil
	})

	if err := lock.Acquire(); err != nil {
		t.Errorf("Expected reused-pid lock to be treated as stale, got: %v", err)
	}
}

func TestSessionLockIgnoresMalformedLock(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "habitkit.json")
	lock := NewSessionLock(dataPath)

	if err := os.WriteFile(lock.Path(), []byte("garbage"), 0600); err != nil {
		t.Fatalf("failed to write lockfile: %v", err)
	}

	if err := lock.Acquire(); err != nil {
		t.Errorf("Expected malformed lock to be treated as stale, got: %v", err)
	}
}

func TestSessionLockReleaseWithoutAcquireIsNoop(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "habitkit.json")
	lock := NewSessionLock(dataPath)

	if err := lock.Release(); err != nil {
		t.Errorf("Expected Release without Acquire to be a no-op, got: %v", err)
	}
}
