// Package service orchestrates a full restore run. The phases are strictly
// sequential: scan, plan, copy, resolve, cleanup. Only the copy engine is
// concurrent internally; nothing here overlaps phases.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nward/homerestore/internal/core/cleanup"
	"github.com/nward/homerestore/internal/core/conflict"
	"github.com/nward/homerestore/internal/core/executor"
	"github.com/nward/homerestore/internal/core/plan"
	"github.com/nward/homerestore/internal/core/scan"
	"github.com/nward/homerestore/internal/domain"
	"github.com/nward/homerestore/internal/lock"
	"github.com/nward/homerestore/internal/logger"
	"github.com/nward/homerestore/internal/progress"
	"github.com/nward/homerestore/internal/prompt"
	"github.com/nward/homerestore/internal/report"
	"github.com/nward/homerestore/internal/state"
)

// Options controls a single restore run
type Options struct {
	// BackupDir is the backup tree to restore from
	BackupDir string

	// HomeDir is the destination home directory
	HomeDir string

	// Jobs is the copy worker count
	Jobs int

	// DryRun stops after planning and prints the plan
	DryRun bool

	// AssumeYes skips the mapping confirmation and confirms cleanup
	AssumeYes bool
}

// RestoreService runs the restore pipeline end to end
type RestoreService struct {
	asker    prompt.Asker
	reporter progress.Reporter
	journal  *state.Manager // nil disables run history
	lockDir  string
	printf   func(format string, args ...any)
}

// NewRestoreService creates a service. journal may be nil; printf defaults
// to discarding output.
func NewRestoreService(asker prompt.Asker, reporter progress.Reporter, journal *state.Manager, lockDir string, printf func(format string, args ...any)) *RestoreService {
	if printf == nil {
		printf = func(string, ...any) {}
	}
	return &RestoreService{
		asker:    asker,
		reporter: reporter,
		journal:  journal,
		lockDir:  lockDir,
		printf:   printf,
	}
}

// Run executes one restore. The returned error is nil for a completed run
// even when individual files failed; those are in the summary and journal.
func (s *RestoreService) Run(ctx context.Context, opts Options) error {
	log := logger.Get()
	started := time.Now()

	fl, err := lock.NewFileLock(s.lockDir)
	if err != nil {
		return err
	}
	if err := fl.Acquire(opts.HomeDir); err != nil {
		if lock.IsLockError(err) {
			return fmt.Errorf("%w: %v", domain.ErrRestoreInProgress, err)
		}
		return err
	}
	defer fl.Release()

	log.Info("scanning backup", "backup", opts.BackupDir)
	scanResult, err := scan.Scan(opts.BackupDir, opts.HomeDir)
	if err != nil {
		return err
	}
	for _, w := range scanResult.Warnings {
		log.Warn(w)
		s.printf("warning: %s\n", w)
	}
	if len(scanResult.Roots) == 0 {
		return domain.ErrNoBackupRoots
	}

	roots, err := s.disambiguate(scanResult.Roots)
	if err != nil {
		return err
	}

	if !opts.AssumeYes {
		if err := s.confirmMappings(roots); err != nil {
			return err
		}
	}

	log.Info("building plan", "roots", len(roots))
	p, err := plan.Build(roots, opts.HomeDir)
	if err != nil {
		return err
	}

	if opts.DryRun {
		s.printf("%s", report.FormatPlan(p))
		s.journalRun(opts, started, "dry-run", p.TotalFiles, p.TotalBytes, p.Conflicts, 0)
		return nil
	}

	log.Info("copying", "files", p.TotalFiles, "bytes", p.TotalBytes, "workers", opts.Jobs)
	copyReport := executor.Execute(ctx, p, opts.Jobs, s.reporter)
	s.printf("%s", report.FormatCopyReport(copyReport))

	if _, err := s.resolveConflicts(copyReport); err != nil {
		s.journalRun(opts, started, statusOf(copyReport), copyReport.Copied, copyReport.BytesTotal, copyReport.Conflicts, copyReport.Failed)
		return err
	}

	if err := s.runCleanup(copyReport, opts.AssumeYes); err != nil {
		return err
	}

	s.journalRun(opts, started, statusOf(copyReport), copyReport.Copied, copyReport.BytesTotal, copyReport.Conflicts, copyReport.Failed)

	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// disambiguate reduces multiple backup roots per category to one, chosen by
// the operator. With one root per category no two copy jobs can share a
// destination path.
func (s *RestoreService) disambiguate(roots []domain.BackupRoot) ([]domain.BackupRoot, error) {
	byCat := make(map[domain.Category][]domain.BackupRoot)
	for _, r := range roots {
		byCat[r.Category] = append(byCat[r.Category], r)
	}

	var chosen []domain.BackupRoot
	for _, cat := range domain.Categories {
		group, ok := byCat[cat]
		if !ok {
			continue
		}
		if len(group) == 1 {
			chosen = append(chosen, group[0])
			continue
		}

		options := make([]string, len(group))
		for i, r := range group {
			options[i] = r.SourcePath
		}
		idx, err := s.asker.Ask(
			fmt.Sprintf("multiple %s folders found in the backup; which one should be restored?", cat),
			options)
		if err != nil {
			return nil, err
		}
		chosen = append(chosen, group[idx])
	}

	return chosen, nil
}

// confirmMappings shows the source-to-destination mapping and aborts on a
// negative answer
func (s *RestoreService) confirmMappings(roots []domain.BackupRoot) error {
	for _, r := range roots {
		s.printf("  %s -> %s\n", r.SourcePath, r.DestPath)
	}
	ok, err := s.asker.Confirm(fmt.Sprintf("restore these %d folders?", len(roots)), true)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAborted
	}
	return nil
}

func (s *RestoreService) resolveConflicts(copyReport *domain.CopyReport) (*conflict.Result, error) {
	conflicts := copyReport.ConflictOutcomes()
	if len(conflicts) == 0 {
		return &conflict.Result{}, nil
	}

	resolver := conflict.NewResolver(s.asker)
	result, err := resolver.Resolve(copyReport)
	if err != nil {
		return nil, err
	}

	if result.Overwritten+result.Discarded+result.KeptBoth > 0 {
		s.printf("Conflicts resolved: %d overwritten, %d kept original, %d kept both.\n",
			result.Overwritten, result.Discarded, result.KeptBoth)
	}
	for _, f := range result.Failures {
		s.printf("  failed to apply %s to %s: %v\n", f.Action, f.OriginalPath, f.Err)
	}
	return result, nil
}

func (s *RestoreService) runCleanup(copyReport *domain.CopyReport, assumeYes bool) error {
	copied := copyReport.CopiedOutcomes()
	if len(copied) == 0 {
		return nil
	}

	confirmed := assumeYes
	if !confirmed {
		var err error
		confirmed, err = s.asker.Confirm(
			fmt.Sprintf("delete the %d restored source files from the backup?", len(copied)), false)
		if err != nil {
			return err
		}
	}

	cleanupReport := cleanup.DeleteSources(copyReport, confirmed)
	s.printf("%s", report.FormatCleanupReport(cleanupReport))
	return nil
}

func (s *RestoreService) journalRun(opts Options, started time.Time, status string, files int, bytes int64, conflicts, errs int) {
	if s.journal == nil {
		return
	}
	err := s.journal.SaveRun(state.RunRecord{
		BackupRoot: opts.BackupDir,
		HomeDir:    opts.HomeDir,
		StartTime:  started,
		EndTime:    time.Now(),
		Status:     status,
		Files:      files,
		Bytes:      bytes,
		Conflicts:  conflicts,
		Errors:     errs,
	})
	if err != nil {
		logger.Get().Warn("failed to journal run", "error", err)
	}
}

func statusOf(r *domain.CopyReport) string {
	switch {
	case r.Failed == 0:
		return "success"
	case r.Copied > 0 || r.Conflicts > 0:
		return "partial"
	default:
		return "failed"
	}
}
