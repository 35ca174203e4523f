// Package progress decouples the copy engine from whatever renders its
// progress. The engine emits events; the CLI decides how to show them.
package progress

import (
	"sync"
	"time"
)

// Reporter receives progress events from the copy engine. Implementations
// must be safe for concurrent use; workers call FileStart from multiple
// goroutines.
type Reporter interface {
	// SetTotal announces how much work the run holds
	SetTotal(totalFiles int, totalBytes int64)
	// FileStart is called when a worker claims a file
	FileStart(path string, size int64)
	// FileDone is called when a file finished copying
	FileDone(path string, bytes int64)
	// FileError is called when a file failed
	FileError(path string, err error)
}

// Callback is a function that receives progress updates
type Callback func(update Update)

// UpdateType indicates the kind of progress update
type UpdateType int

const (
	UpdateStart UpdateType = iota
	UpdateDone
	UpdateError
)

// Update is a snapshot of overall progress at the moment of one event
type Update struct {
	Type           UpdateType
	CurrentFile    string
	FilesCompleted int
	FilesTotal     int
	BytesCompleted int64
	BytesTotal     int64
	BytesPerSecond float64
	Err            error
}

// CallbackReporter implements Reporter by forwarding snapshots to a callback
type CallbackReporter struct {
	callback Callback

	mu             sync.Mutex
	filesTotal     int
	bytesTotal     int64
	filesCompleted int
	bytesCompleted int64
	startTime      time.Time
}

// NewCallbackReporter creates a reporter that forwards events to callback
func NewCallbackReporter(callback Callback) *CallbackReporter {
	return &CallbackReporter{callback: callback}
}

// SetTotal sets the total number of files and bytes for the run
func (r *CallbackReporter) SetTotal(totalFiles int, totalBytes int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filesTotal = totalFiles
	r.bytesTotal = totalBytes
	r.startTime = time.Now()
}

// FileStart reports that a worker claimed a file
func (r *CallbackReporter) FileStart(path string, size int64) {
	r.emit(UpdateStart, path, 0, nil)
}

// FileDone reports a completed file
func (r *CallbackReporter) FileDone(path string, bytes int64) {
	r.emit(UpdateDone, path, bytes, nil)
}

// FileError reports a failed file
func (r *CallbackReporter) FileError(path string, err error) {
	r.emit(UpdateError, path, 0, err)
}

// emit builds the snapshot under the lock and invokes the callback outside
// it so a slow renderer cannot stall the workers on the mutex
func (r *CallbackReporter) emit(t UpdateType, path string, bytes int64, err error) {
	r.mu.Lock()
	if t == UpdateDone || t == UpdateError {
		r.filesCompleted++
		r.bytesCompleted += bytes
	}

	var rate float64
	if elapsed := time.Since(r.startTime).Seconds(); elapsed > 0 {
		rate = float64(r.bytesCompleted) / elapsed
	}

	update := Update{
		Type:           t,
		CurrentFile:    path,
		FilesCompleted: r.filesCompleted,
		FilesTotal:     r.filesTotal,
		BytesCompleted: r.bytesCompleted,
		BytesTotal:     r.bytesTotal,
		BytesPerSecond: rate,
		Err:            err,
	}
	callback := r.callback
	r.mu.Unlock()

	if callback != nil {
		callback(update)
	}
}

// NullReporter discards all progress events
type NullReporter struct{}

func (NullReporter) SetTotal(totalFiles int, totalBytes int64) {}
func (NullReporter) FileStart(path string, size int64)         {}
func (NullReporter) FileDone(path string, bytes int64)         {}
func (NullReporter) FileError(path string, err error)          {}
