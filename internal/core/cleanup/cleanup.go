// Package cleanup deletes backup sources after a successful restore. Only
// files whose copy actually reached the destination are ever touched.
package cleanup

import (
	"path/filepath"
	"strings"

	"github.com/nward/homerestore/internal/domain"
	"github.com/nward/homerestore/internal/fsops"
)

// DeleteSources removes the source file of every outcome that was copied,
// either canonically or as a restore variant. Files that failed to copy are
// never deleted. With confirmed=false nothing happens and the report says
// so. Per-file deletion failures are recorded and do not stop the batch.
func DeleteSources(report *domain.CopyReport, confirmed bool) *domain.CleanupReport {
	out := &domain.CleanupReport{}
	if !confirmed {
		out.Skipped = true
		return out
	}

	roots := make(map[string]struct{})
	for _, o := range report.CopiedOutcomes() {
		if err := fsops.RemoveFile(o.Entry.SourcePath); err != nil {
			out.Failed = append(out.Failed, domain.CleanupOutcome{
				SourcePath: o.Entry.SourcePath,
				Err:        err,
			})
			continue
		}
		out.Deleted = append(out.Deleted, o.Entry.SourcePath)
		roots[rootOf(o.Entry)] = struct{}{}
	}

	// Prune directories the deletions emptied out. Best effort: a directory
	// still holding failed-to-copy files simply stays.
	for root := range roots {
		_ = fsops.PruneEmptyDirs(root)
	}

	return out
}

// rootOf recovers the backup-root path from an entry by stripping the
// relative path off its source
func rootOf(e domain.FileEntry) string {
	root := e.SourcePath
	for range strings.Split(e.RelPath, "/") {
		root = filepath.Dir(root)
	}
	return root
}
