// Package executor runs a copy plan on a fixed-size worker pool. Workers
// pull whole files from a shared channel and push outcomes to a single
// collector, so the only shared mutable state is the two channels.
package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nward/homerestore/internal/domain"
	"github.com/nward/homerestore/internal/fsops"
	"github.com/nward/homerestore/internal/progress"
)

// DefaultWorkers is the pool size used when none is configured
const DefaultWorkers = 4

// Execute copies every entry of the plan using `workers` concurrent workers
// and returns after each entry has been attempted exactly once. Individual
// failures are recorded in the report and never abort the run. The plan is
// read-only throughout.
func Execute(ctx context.Context, p *domain.Plan, workers int, reporter progress.Reporter) *domain.CopyReport {
	if workers < 1 {
		workers = 1
	}
	if reporter == nil {
		reporter = progress.NullReporter{}
	}

	report := &domain.CopyReport{}
	start := time.Now()

	// Destination directories first, so empty source directories are
	// restored even though no file entry touches them
	for _, dir := range p.Dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			report.Warnings = append(report.Warnings,
				"cannot create directory "+dir+": "+err.Error())
		}
	}

	reporter.SetTotal(p.TotalFiles, p.TotalBytes)

	jobs := make(chan domain.FileEntry)
	results := make(chan domain.CopyOutcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				reporter.FileStart(entry.RelPath, entry.Size)
				results <- copyOne(entry)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, entry := range p.Entries {
			select {
			case <-ctx.Done():
				return
			case jobs <- entry:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for outcome := range results {
		report.Add(outcome)
		if outcome.Err != nil {
			reporter.FileError(outcome.Entry.RelPath, outcome.Err)
		} else {
			reporter.FileDone(outcome.Entry.RelPath, outcome.Bytes)
		}
	}

	report.Elapsed = time.Since(start)
	return report
}

// copyOne attempts a single entry. Entries flagged as conflicts at plan time
// go straight to their restore-variant path; everything else is copied with
// an exclusive create so a destination that appeared after planning turns
// into a late conflict instead of an overwrite.
func copyOne(entry domain.FileEntry) domain.CopyOutcome {
	outcome := domain.CopyOutcome{Entry: entry}

	if err := os.MkdirAll(filepath.Dir(entry.DestPath), 0755); err != nil {
		outcome.Status = domain.StatusFailed
		outcome.Err = fsops.MapError(err)
		return outcome
	}

	if entry.Conflict {
		written, n, err := fsops.CopyToVariant(entry.SourcePath, entry.DestPath)
		if err != nil {
			outcome.Status = domain.StatusFailed
			outcome.Err = err
			return outcome
		}
		outcome.Status = domain.StatusConflictVariant
		outcome.WrittenPath = written
		outcome.Bytes = n
		return outcome
	}

	n, err := fsops.CopyExclusive(entry.SourcePath, entry.DestPath)
	switch {
	case err == nil:
		outcome.Status = domain.StatusCopied
		outcome.WrittenPath = entry.DestPath
		outcome.Bytes = n
	case errors.Is(err, domain.ErrAlreadyExists):
		outcome.Status = domain.StatusLateConflict
		outcome.Err = domain.ErrDestinationAppeared
	default:
		outcome.Status = domain.StatusFailed
		outcome.Err = err
	}
	return outcome
}
