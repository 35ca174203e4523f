package state

import (
	"testing"
	"time"

	"github.com/nward/homerestore/internal/testutil"
)

func newTestManager(t *testing.T) (*Manager, func()) {
	t.Helper()

	dir, cleanupDir := testutil.TempDir(t)
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m, func() {
		m.Close()
		cleanupDir()
	}
}

func record(status string, start time.Time) RunRecord {
	return RunRecord{
		BackupRoot: "/mnt/backup",
		HomeDir:    "/home/user",
		StartTime:  start,
		EndTime:    start.Add(time.Minute),
		Status:     status,
		Files:      10,
		Bytes:      1024,
		Conflicts:  2,
		Errors:     0,
	}
}

func TestManager_SaveAndHistory(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()

	now := time.Now().Truncate(time.Second)
	if err := m.SaveRun(record("success", now)); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	records, err := m.History(10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.BackupRoot != "/mnt/backup" {
		t.Errorf("Expected backup root /mnt/backup, got %s", r.BackupRoot)
	}
	if r.Status != "success" {
		t.Errorf("Expected status success, got %s", r.Status)
	}
	if r.Files != 10 || r.Bytes != 1024 || r.Conflicts != 2 {
		t.Errorf("Counters not persisted: %+v", r)
	}
}

func TestManager_HistoryNewestFirst(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 3; i++ {
		if err := m.SaveRun(record("success", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	records, err := m.History(10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i-1].StartTime.Before(records[i].StartTime) {
			t.Errorf("History not newest-first at index %d", i)
		}
	}
}

func TestManager_HistoryLimit(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()

	base := time.Now().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		if err := m.SaveRun(record("success", base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	records, err := m.History(2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}

	if _, err := m.History(0); err == nil {
		t.Errorf("Expected error for non-positive limit")
	}
}

func TestManager_InvalidStatusRejected(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()

	err := m.SaveRun(record("exploded", time.Now()))
	if err == nil {
		t.Fatal("Expected error for invalid status")
	}
}

func TestManager_LastSuccess(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()

	got, err := m.LastSuccess()
	if err != nil {
		t.Fatalf("LastSuccess failed: %v", err)
	}
	if got != nil {
		t.Fatalf("Expected nil with empty journal, got %+v", got)
	}

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := m.SaveRun(record("success", base)); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := m.SaveRun(record("failed", base.Add(time.Minute))); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err = m.LastSuccess()
	if err != nil {
		t.Fatalf("LastSuccess failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected a record")
	}
	if got.Status != "success" {
		t.Errorf("Expected success record, got %s", got.Status)
	}
}

func TestManager_EmptyDataDir(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("Expected error for empty data dir")
	}
}
