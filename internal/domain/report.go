package domain

import (
	"sort"
	"time"
)

// OutcomeStatus classifies the result of copying one file
type OutcomeStatus int

const (
	// StatusCopied means the file landed at its canonical destination
	StatusCopied OutcomeStatus = iota

	// StatusConflictVariant means the destination existed at plan time and
	// the file was written to a .restore variant path instead
	StatusConflictVariant

	// StatusLateConflict means the destination appeared between planning
	// and copying; nothing was written
	StatusLateConflict

	// StatusFailed means the copy failed for any other reason
	StatusFailed
)

// String implements fmt.Stringer
func (s OutcomeStatus) String() string {
	switch s {
	case StatusCopied:
		return "copied"
	case StatusConflictVariant:
		return "conflict"
	case StatusLateConflict:
		return "late-conflict"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CopyOutcome is the result of attempting one FileEntry
type CopyOutcome struct {
	Entry  FileEntry
	Status OutcomeStatus

	// WrittenPath is where the file actually landed: the canonical
	// destination for StatusCopied, the variant path for
	// StatusConflictVariant, empty otherwise
	WrittenPath string

	// Bytes actually transferred
	Bytes int64

	// Err holds the failure reason for StatusFailed and StatusLateConflict
	Err error
}

// CopyReport collects every outcome of a copy run. Append-only while the
// engine runs; read-only afterwards.
type CopyReport struct {
	Outcomes []CopyOutcome

	Copied     int
	Conflicts  int
	Failed     int
	BytesTotal int64

	// Warnings from destination directory pre-creation
	Warnings []string

	Elapsed time.Duration
}

// Add folds one outcome into the report counters
func (r *CopyReport) Add(o CopyOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusCopied:
		r.Copied++
		r.BytesTotal += o.Bytes
	case StatusConflictVariant:
		r.Conflicts++
		r.BytesTotal += o.Bytes
	case StatusLateConflict, StatusFailed:
		r.Failed++
	}
}

// ConflictOutcomes returns the outcomes written as restore variants,
// ordered by category then relative path for a reproducible operator
// experience regardless of worker completion order.
func (r *CopyReport) ConflictOutcomes() []CopyOutcome {
	var out []CopyOutcome
	for _, o := range r.Outcomes {
		if o.Status == StatusConflictVariant {
			out = append(out, o)
		}
	}
	sortOutcomes(out)
	return out
}

// CopiedOutcomes returns the outcomes whose source file reached the
// destination, canonically or as a variant. These are the only sources
// cleanup may delete.
func (r *CopyReport) CopiedOutcomes() []CopyOutcome {
	var out []CopyOutcome
	for _, o := range r.Outcomes {
		if o.Status == StatusCopied || o.Status == StatusConflictVariant {
			out = append(out, o)
		}
	}
	sortOutcomes(out)
	return out
}

func sortOutcomes(out []CopyOutcome) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Entry.Category != out[j].Entry.Category {
			return out[i].Entry.Category < out[j].Entry.Category
		}
		return out[i].Entry.RelPath < out[j].Entry.RelPath
	})
}

// ResolutionScope selects how many conflicts one decision covers
type ResolutionScope int

const (
	ScopeGlobal ResolutionScope = iota
	ScopeCategory
	ScopePerFile
)

// ResolutionAction is what to do with a single conflict
type ResolutionAction int

const (
	// ActionOverwrite replaces the original with the restore variant
	ActionOverwrite ResolutionAction = iota

	// ActionKeepOriginal deletes the restore variant
	ActionKeepOriginal

	// ActionKeepBoth leaves both files in place
	ActionKeepBoth
)

// String implements fmt.Stringer
func (a ResolutionAction) String() string {
	switch a {
	case ActionOverwrite:
		return "overwrite"
	case ActionKeepOriginal:
		return "keep-original"
	case ActionKeepBoth:
		return "keep-both"
	default:
		return "unknown"
	}
}

// CleanupOutcome records one source deletion attempt
type CleanupOutcome struct {
	SourcePath string
	Err        error
}

// CleanupReport collects the results of deleting copied sources
type CleanupReport struct {
	Deleted []string
	Failed  []CleanupOutcome

	// Skipped is true when cleanup ran without confirmation and did nothing
	Skipped bool
}
