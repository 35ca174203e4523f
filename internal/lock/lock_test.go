package lock

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nward/homerestore/internal/testutil"
)

func TestFileLock_AcquireRelease(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	fl, err := NewFileLock(dir)
	if err != nil {
		t.Fatalf("NewFileLock failed: %v", err)
	}

	if err := fl.Acquire("/home/user"); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if !fl.IsLocked() {
		t.Errorf("Expected lock to be held")
	}

	holder, err := fl.GetHolder()
	if err != nil {
		t.Fatalf("GetHolder failed: %v", err)
	}
	if holder.PID != os.Getpid() {
		t.Errorf("Expected our PID %d, got %d", os.Getpid(), holder.PID)
	}
	if holder.HomeDir != "/home/user" {
		t.Errorf("Expected home /home/user, got %s", holder.HomeDir)
	}

	if err := fl.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if fl.IsLocked() {
		t.Errorf("Expected lock released")
	}
}

func TestFileLock_SecondAcquireFails(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	first, _ := NewFileLock(dir)
	if err := first.Acquire("/home/user"); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer first.Release()

	second, _ := NewFileLock(dir)
	err := second.Acquire("/home/user")
	if err == nil {
		t.Fatal("Expected second acquire to fail")
	}
	if !IsLockError(err) {
		t.Errorf("Expected a LockError, got %T: %v", err, err)
	}
}

func TestFileLock_StaleLockTakenOver(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	// write a lock file for a PID that cannot exist
	hostname, _ := os.Hostname()
	stale := LockInfo{
		PID:       1 << 30,
		Hostname:  hostname,
		StartTime: time.Now().Add(-time.Hour),
		HomeDir:   "/home/other",
	}
	data, _ := json.Marshal(stale)
	if err := os.WriteFile(filepath.Join(dir, LockFileName), data, 0644); err != nil {
		t.Fatalf("write stale lock failed: %v", err)
	}

	fl, _ := NewFileLock(dir)
	if err := fl.Acquire("/home/user"); err != nil {
		t.Fatalf("Expected stale lock takeover, got %v", err)
	}
	defer fl.Release()
}

func TestFileLock_ForeignHostTimeout(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	fresh := LockInfo{
		PID:       1234,
		Hostname:  "some-other-host",
		StartTime: time.Now(),
		HomeDir:   "/home/user",
	}
	data, _ := json.Marshal(fresh)
	if err := os.WriteFile(filepath.Join(dir, LockFileName), data, 0644); err != nil {
		t.Fatalf("write lock failed: %v", err)
	}

	fl, _ := NewFileLock(dir)
	if err := fl.Acquire("/home/user"); err == nil {
		t.Fatal("Expected fresh foreign lock to block acquisition")
	}

	fl.SetStaleTimeout(time.Nanosecond)
	time.Sleep(time.Millisecond)
	if err := fl.Acquire("/home/user"); err != nil {
		t.Fatalf("Expected timed-out foreign lock takeover, got %v", err)
	}
	defer fl.Release()
}

func TestFileLock_ForceRelease(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	fl, _ := NewFileLock(dir)
	if err := fl.Acquire("/home/user"); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if err := fl.ForceRelease(); err != nil {
		t.Fatalf("ForceRelease failed: %v", err)
	}
	if fl.IsLocked() {
		t.Errorf("Expected lock gone after force release")
	}
}

func TestFileLock_ReleaseWithoutAcquire(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	fl, _ := NewFileLock(dir)
	if err := fl.Release(); err != nil {
		t.Fatalf("Expected no-op release, got %v", err)
	}
}

func TestProcessExists_Self(t *testing.T) {
	if !processExists(os.Getpid()) {
		t.Errorf("Expected our own PID to exist")
	}
}
