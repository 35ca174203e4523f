// Package report renders plans and copy results as text. Everything here is
// a pure projection; nothing touches the filesystem.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nward/homerestore/internal/domain"
)

// maxListedConflicts caps the conflict listing in summaries before
// abbreviating
const maxListedConflicts = 10

// FormatPlan renders a dry-run view of the plan: per-category totals,
// conflicts, and any warnings collected while planning. Output is
// deterministic for identical filesystem state.
func FormatPlan(p *domain.Plan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Restore plan: %d files, %s\n",
		p.TotalFiles, humanize.IBytes(uint64(p.TotalBytes)))

	for _, cat := range domain.Categories {
		stats, ok := p.ByCategory[cat]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %-12s %4d files  %10s", cat, stats.Files,
			humanize.IBytes(uint64(stats.Bytes)))
		if stats.Conflicts > 0 {
			fmt.Fprintf(&b, "  (%d conflicts)", stats.Conflicts)
		}
		b.WriteString("\n")
	}

	if p.Conflicts > 0 {
		fmt.Fprintf(&b, "\n%d destinations already exist and would be written as .restore files:\n", p.Conflicts)
		listed := 0
		for _, e := range p.Entries {
			if !e.Conflict {
				continue
			}
			if listed == maxListedConflicts {
				fmt.Fprintf(&b, "  ... and %d more\n", p.Conflicts-listed)
				break
			}
			fmt.Fprintf(&b, "  %s\n", e.DestPath)
			listed++
		}
	}

	for _, w := range p.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}

	return b.String()
}

// FormatCopyReport renders the post-copy summary: totals, per-category
// breakdown, failures with reasons, and the conflict listing.
func FormatCopyReport(r *domain.CopyReport) string {
	var b strings.Builder

	b.WriteString("--- Restore summary ---\n")
	fmt.Fprintf(&b, "%d files copied, %d conflicts, %d failed\n",
		r.Copied, r.Conflicts, r.Failed)
	fmt.Fprintf(&b, "Total: %s in %.1fs\n",
		humanize.IBytes(uint64(r.BytesTotal)), r.Elapsed.Seconds())

	type catLine struct {
		copied, conflicts, failed int
	}
	byCat := make(map[domain.Category]catLine)
	for _, o := range r.Outcomes {
		line := byCat[o.Entry.Category]
		switch o.Status {
		case domain.StatusCopied:
			line.copied++
		case domain.StatusConflictVariant:
			line.conflicts++
		default:
			line.failed++
		}
		byCat[o.Entry.Category] = line
	}

	if len(byCat) > 0 {
		b.WriteString("\nPer directory:\n")
		for _, cat := range domain.Categories {
			line, ok := byCat[cat]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %-12s %d copied, %d conflicts, %d failed\n",
				cat, line.copied, line.conflicts, line.failed)
		}
	}

	var failures []domain.CopyOutcome
	for _, o := range r.Outcomes {
		if o.Status == domain.StatusFailed || o.Status == domain.StatusLateConflict {
			failures = append(failures, o)
		}
	}
	if len(failures) > 0 {
		b.WriteString("\nFailures:\n")
		for _, o := range failures {
			fmt.Fprintf(&b, "  %s: %s -> %s (%v)\n",
				o.Entry.Category, o.Entry.SourcePath, o.Entry.DestPath, o.Err)
		}
	}

	conflicts := r.ConflictOutcomes()
	if len(conflicts) > 0 {
		b.WriteString("\nConflicts:\n")
		for i, o := range conflicts {
			if i == maxListedConflicts {
				fmt.Fprintf(&b, "  ... and %d more\n", len(conflicts)-i)
				break
			}
			fmt.Fprintf(&b, "  %s -> %s\n", o.Entry.DestPath, o.WrittenPath)
		}
	}

	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}

	return b.String()
}

// FormatCleanupReport renders the source-deletion results
func FormatCleanupReport(r *domain.CleanupReport) string {
	if r.Skipped {
		return "Cleanup skipped; backup sources left in place.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Deleted %d source files from backup.\n", len(r.Deleted))
	for _, f := range r.Failed {
		fmt.Fprintf(&b, "  failed to delete %s: %v\n", f.SourcePath, f.Err)
	}
	return b.String()
}

// FormatElapsed renders a duration the way the summaries do
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
