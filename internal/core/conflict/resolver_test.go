package conflict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nward/homerestore/internal/domain"
	"github.com/nward/homerestore/internal/prompt"
	"github.com/nward/homerestore/internal/testutil"
)

// conflictFixture creates an original plus a restore variant on disk and
// returns the matching outcome
func conflictFixture(t *testing.T, dir, name, original, restored string) domain.CopyOutcome {
	t.Helper()

	dst := testutil.CreateTestFile(t, dir, name, []byte(original))
	variant := testutil.CreateTestFile(t, dir, variantName(name), []byte(restored))

	return domain.CopyOutcome{
		Entry: domain.FileEntry{
			RelPath:  name,
			DestPath: dst,
			Category: domain.CategoryDocuments,
		},
		Status:      domain.StatusConflictVariant,
		WrittenPath: variant,
		Bytes:       int64(len(restored)),
	}
}

func variantName(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)] + ".restore" + ext
}

func reportWith(outcomes ...domain.CopyOutcome) *domain.CopyReport {
	r := &domain.CopyReport{}
	for _, o := range outcomes {
		r.Add(o)
	}
	return r
}

func TestResolve_NoConflicts(t *testing.T) {
	asker := &prompt.ScriptedAsker{}
	resolver := NewResolver(asker)

	result, err := resolver.Resolve(&domain.CopyReport{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(asker.Prompts) != 0 {
		t.Errorf("Expected no prompts for empty report, got %d", len(asker.Prompts))
	}
	if result.Overwritten+result.Discarded+result.KeptBoth != 0 {
		t.Errorf("Expected empty result, got %+v", result)
	}
}

func TestResolve_OverwriteAll(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	o := conflictFixture(t, dir, "a.txt", "original", "restored")
	resolver := NewResolver(&prompt.ScriptedAsker{Choices: []int{0}})

	result, err := resolver.Resolve(reportWith(o))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result.Overwritten != 1 {
		t.Fatalf("Expected 1 overwritten, got %d", result.Overwritten)
	}
	if got := testutil.ReadFile(t, o.Entry.DestPath); got != "restored" {
		t.Errorf("Expected restored content, got %q", got)
	}
	if testutil.FileExists(t, o.WrittenPath) {
		t.Errorf("Expected variant to be gone after overwrite")
	}
}

func TestResolve_KeepAllOriginals(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	o := conflictFixture(t, dir, "a.txt", "original", "restored")
	resolver := NewResolver(&prompt.ScriptedAsker{Choices: []int{1}})

	result, err := resolver.Resolve(reportWith(o))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result.Discarded != 1 {
		t.Fatalf("Expected 1 discarded, got %d", result.Discarded)
	}
	if got := testutil.ReadFile(t, o.Entry.DestPath); got != "original" {
		t.Errorf("Expected original content, got %q", got)
	}
	if testutil.FileExists(t, o.WrittenPath) {
		t.Errorf("Expected variant to be deleted")
	}
}

func TestResolve_KeepBothEverywhere(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	o := conflictFixture(t, dir, "a.txt", "original", "restored")
	resolver := NewResolver(&prompt.ScriptedAsker{Choices: []int{4}})

	result, err := resolver.Resolve(reportWith(o))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result.KeptBoth != 1 {
		t.Fatalf("Expected 1 kept both, got %d", result.KeptBoth)
	}
	if got := testutil.ReadFile(t, o.Entry.DestPath); got != "original" {
		t.Errorf("Original was touched: got %q", got)
	}
	if got := testutil.ReadFile(t, o.WrittenPath); got != "restored" {
		t.Errorf("Variant was touched: got %q", got)
	}
}

func TestResolve_PerCategory(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	doc := conflictFixture(t, dir, "doc.txt", "orig-doc", "new-doc")
	pic := conflictFixture(t, dir, "pic.png", "orig-pic", "new-pic")
	pic.Entry.Category = domain.CategoryPictures

	// scope: per category; Documents -> overwrite, Pictures -> keep original
	resolver := NewResolver(&prompt.ScriptedAsker{Choices: []int{2, 0, 1}})

	result, err := resolver.Resolve(reportWith(doc, pic))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result.Overwritten != 1 || result.Discarded != 1 {
		t.Fatalf("Expected 1 overwritten and 1 discarded, got %+v", result)
	}
	if got := testutil.ReadFile(t, doc.Entry.DestPath); got != "new-doc" {
		t.Errorf("Expected doc overwritten, got %q", got)
	}
	if got := testutil.ReadFile(t, pic.Entry.DestPath); got != "orig-pic" {
		t.Errorf("Expected pic original kept, got %q", got)
	}
}

func TestResolve_PerFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	a := conflictFixture(t, dir, "a.txt", "orig-a", "new-a")
	b := conflictFixture(t, dir, "b.txt", "orig-b", "new-b")

	// scope: per file; a -> keep both, b -> overwrite
	resolver := NewResolver(&prompt.ScriptedAsker{Choices: []int{3, 2, 0}})

	result, err := resolver.Resolve(reportWith(a, b))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if result.KeptBoth != 1 || result.Overwritten != 1 {
		t.Fatalf("Expected 1 kept both and 1 overwritten, got %+v", result)
	}
	if !testutil.FileExists(t, a.WrittenPath) {
		t.Errorf("Expected a's variant kept")
	}
	if got := testutil.ReadFile(t, b.Entry.DestPath); got != "new-b" {
		t.Errorf("Expected b overwritten, got %q", got)
	}
}

func TestResolve_FailureDoesNotStopSession(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	good := conflictFixture(t, dir, "good.txt", "orig", "new")
	bad := conflictFixture(t, dir, "bad.txt", "orig", "new")
	// make the bad variant unmovable by deleting it up front
	if err := os.Remove(bad.WrittenPath); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	resolver := NewResolver(&prompt.ScriptedAsker{Choices: []int{0}})

	result, err := resolver.Resolve(reportWith(bad, good))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("Expected 1 failure, got %d", len(result.Failures))
	}
	if result.Overwritten != 1 {
		t.Errorf("Expected the good conflict still applied, got %d", result.Overwritten)
	}
	if result.Failures[0].OriginalPath != bad.Entry.DestPath {
		t.Errorf("Expected failure on %s, got %s", bad.Entry.DestPath, result.Failures[0].OriginalPath)
	}
}

func TestApply_Overwrite(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	o := conflictFixture(t, dir, "a.txt", "original", "restored")
	if err := Apply(o, domain.ActionOverwrite); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := testutil.ReadFile(t, o.Entry.DestPath); got != "restored" {
		t.Errorf("Expected restored content, got %q", got)
	}
}

func TestApply_UnknownAction(t *testing.T) {
	err := Apply(domain.CopyOutcome{}, domain.ResolutionAction(99))
	if err == nil {
		t.Fatal("Expected error for unknown action")
	}
}
