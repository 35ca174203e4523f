// Package conflict drives the post-copy resolution of restore variants: the
// operator picks a granularity and an action, and the resolver applies each
// decision to the filesystem immediately.
package conflict

import (
	"fmt"
	"os"

	"github.com/nward/homerestore/internal/domain"
	"github.com/nward/homerestore/internal/fsops"
	"github.com/nward/homerestore/internal/prompt"
)

// Failure records one decision that could not be applied
type Failure struct {
	OriginalPath string
	Action       domain.ResolutionAction
	Err          error
}

// Result summarizes a resolution session
type Result struct {
	Overwritten int
	Discarded   int
	KeptBoth    int
	Failures    []Failure
}

// Resolver walks the conflicts of a copy report through the operator's
// decisions. It owns only the restore variants on disk; the report itself
// is never mutated.
type Resolver struct {
	asker prompt.Asker
}

// NewResolver creates a resolver that consults the given asker
func NewResolver(asker prompt.Asker) *Resolver {
	return &Resolver{asker: asker}
}

var scopeOptions = []string{
	"Overwrite all originals with restored versions",
	"Keep all originals (delete .restore files)",
	"Decide per category",
	"Decide per file",
	"Keep both everywhere (leave .restore files)",
}

var actionOptions = []string{
	"Overwrite original",
	"Keep original",
	"Keep both",
}

// Resolve presents every conflict of the report, in category-then-path
// order, and applies the chosen actions. A decision that fails to apply is
// recorded and the session continues; the terminal state is every conflict
// having received exactly one decision.
func (r *Resolver) Resolve(report *domain.CopyReport) (*Result, error) {
	conflicts := report.ConflictOutcomes()
	if len(conflicts) == 0 {
		return &Result{}, nil
	}

	result := &Result{}

	choice, err := r.asker.Ask(
		fmt.Sprintf("%d conflicts were written as .restore files. How should they be handled?", len(conflicts)),
		scopeOptions)
	if err != nil {
		return nil, err
	}

	switch choice {
	case 0:
		r.applyAll(result, conflicts, domain.ActionOverwrite)
	case 1:
		r.applyAll(result, conflicts, domain.ActionKeepOriginal)
	case 2:
		err = r.resolvePerCategory(result, conflicts)
	case 3:
		err = r.resolvePerFile(result, conflicts)
	case 4:
		r.applyAll(result, conflicts, domain.ActionKeepBoth)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Resolver) resolvePerCategory(result *Result, conflicts []domain.CopyOutcome) error {
	// conflicts arrive sorted by category, so grouping preserves order
	groups := make(map[domain.Category][]domain.CopyOutcome)
	for _, c := range conflicts {
		groups[c.Entry.Category] = append(groups[c.Entry.Category], c)
	}

	for _, cat := range domain.Categories {
		group, ok := groups[cat]
		if !ok {
			continue
		}
		choice, err := r.asker.Ask(
			fmt.Sprintf("%s (%d conflicts)", cat, len(group)), actionOptions)
		if err != nil {
			return err
		}
		r.applyAll(result, group, domain.ResolutionAction(choice))
	}
	return nil
}

func (r *Resolver) resolvePerFile(result *Result, conflicts []domain.CopyOutcome) error {
	for _, c := range conflicts {
		choice, err := r.asker.Ask(
			fmt.Sprintf("%s (%d bytes restored to %s)", c.Entry.DestPath, c.Bytes, c.WrittenPath),
			actionOptions)
		if err != nil {
			return err
		}
		r.apply(result, c, domain.ResolutionAction(choice))
	}
	return nil
}

func (r *Resolver) applyAll(result *Result, conflicts []domain.CopyOutcome, action domain.ResolutionAction) {
	for _, c := range conflicts {
		r.apply(result, c, action)
	}
}

func (r *Resolver) apply(result *Result, c domain.CopyOutcome, action domain.ResolutionAction) {
	if err := Apply(c, action); err != nil {
		result.Failures = append(result.Failures, Failure{
			OriginalPath: c.Entry.DestPath,
			Action:       action,
			Err:          err,
		})
		return
	}
	switch action {
	case domain.ActionOverwrite:
		result.Overwritten++
	case domain.ActionKeepOriginal:
		result.Discarded++
	case domain.ActionKeepBoth:
		result.KeptBoth++
	}
}

// Apply executes a single resolution on disk. Overwrite moves the restore
// variant over the original; KeepOriginal deletes the variant; KeepBoth
// touches nothing.
func Apply(c domain.CopyOutcome, action domain.ResolutionAction) error {
	switch action {
	case domain.ActionOverwrite:
		if err := os.Rename(c.WrittenPath, c.Entry.DestPath); err != nil {
			return fsops.MapError(err)
		}
		return nil
	case domain.ActionKeepOriginal:
		return fsops.RemoveFile(c.WrittenPath)
	case domain.ActionKeepBoth:
		return nil
	default:
		return fmt.Errorf("unknown resolution action: %d", action)
	}
}
