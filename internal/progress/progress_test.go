package progress

import (
	"errors"
	"sync"
	"testing"
)

func TestCallbackReporter_CountsCompletions(t *testing.T) {
	var updates []Update
	r := NewCallbackReporter(func(u Update) {
		updates = append(updates, u)
	})

	r.SetTotal(2, 300)
	r.FileStart("a.txt", 100)
	r.FileDone("a.txt", 100)
	r.FileStart("b.txt", 200)
	r.FileDone("b.txt", 200)

	if len(updates) != 4 {
		t.Fatalf("Expected 4 updates, got %d", len(updates))
	}

	last := updates[len(updates)-1]
	if last.FilesCompleted != 2 {
		t.Errorf("Expected 2 files completed, got %d", last.FilesCompleted)
	}
	if last.BytesCompleted != 300 {
		t.Errorf("Expected 300 bytes completed, got %d", last.BytesCompleted)
	}
	if last.FilesTotal != 2 || last.BytesTotal != 300 {
		t.Errorf("Expected totals carried in snapshot, got %+v", last)
	}
}

func TestCallbackReporter_ErrorCountsAsCompleted(t *testing.T) {
	var last Update
	r := NewCallbackReporter(func(u Update) { last = u })

	r.SetTotal(1, 100)
	r.FileError("a.txt", errors.New("boom"))

	if last.Type != UpdateError {
		t.Errorf("Expected UpdateError, got %v", last.Type)
	}
	if last.FilesCompleted != 1 {
		t.Errorf("Expected error to count toward completion, got %d", last.FilesCompleted)
	}
	if last.Err == nil {
		t.Errorf("Expected error carried in update")
	}
}

func TestCallbackReporter_ConcurrentUse(t *testing.T) {
	var mu sync.Mutex
	count := 0
	r := NewCallbackReporter(func(u Update) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	r.SetTotal(100, 100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				r.FileStart("f", 1)
				r.FileDone("f", 1)
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != 200 {
		t.Errorf("Expected 200 callbacks, got %d", count)
	}
}

func TestNullReporter_DoesNothing(t *testing.T) {
	var r Reporter = NullReporter{}
	r.SetTotal(1, 1)
	r.FileStart("a", 1)
	r.FileDone("a", 1)
	r.FileError("a", errors.New("x"))
}
