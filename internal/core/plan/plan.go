// Package plan turns discovered backup roots into an immutable copy plan:
// every file to transfer, its destination, whether that destination already
// exists, and aggregate totals computed in the same pass.
package plan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/nward/homerestore/internal/domain"
	"github.com/nward/homerestore/internal/fsops"
)

// Build enumerates all files beneath each backup root and computes their
// destinations under homeDir. A root that cannot be enumerated at all is
// downgraded to a warning; the plan continues for the remaining roots.
//
// Symlink policy: symlinks to regular files are planned as ordinary content
// copies. Directory symlinks and broken links are skipped with a warning —
// following them risks cycles on deep backups and duplicated subtrees.
func Build(roots []domain.BackupRoot, homeDir string) (*domain.Plan, error) {
	p := &domain.Plan{
		ByCategory: make(map[domain.Category]domain.CategoryStats),
	}

	for _, root := range roots {
		if err := addRoot(p, root); err != nil {
			p.Warnings = append(p.Warnings,
				fmt.Sprintf("skipping %s root %s: %v", root.Category, root.SourcePath, err))
		}
	}

	sort.Slice(p.Entries, func(i, j int) bool {
		if p.Entries[i].Category != p.Entries[j].Category {
			return p.Entries[i].Category < p.Entries[j].Category
		}
		return p.Entries[i].RelPath < p.Entries[j].RelPath
	})

	return p, nil
}

func addRoot(p *domain.Plan, root domain.BackupRoot) error {
	// Verify the root is readable before committing any of it to the plan
	if _, err := os.ReadDir(root.SourcePath); err != nil {
		return fsops.MapError(err)
	}

	p.Dirs = append(p.Dirs, root.DestPath)

	return filepath.WalkDir(root.SourcePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			p.Warnings = append(p.Warnings,
				fmt.Sprintf("skipping unreadable path %s: %v", path, err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root.SourcePath {
			return nil
		}

		rel, relErr := filepath.Rel(root.SourcePath, path)
		if relErr != nil {
			return relErr
		}
		dest := filepath.Join(root.DestPath, rel)

		switch {
		case d.IsDir():
			p.Dirs = append(p.Dirs, dest)
			return nil

		case d.Type()&fs.ModeSymlink != 0:
			target, statErr := os.Stat(path)
			if statErr != nil || !target.Mode().IsRegular() {
				p.Warnings = append(p.Warnings,
					fmt.Sprintf("skipping symlink %s: not a regular file", path))
				return nil
			}
			addEntry(p, root, rel, path, dest, target.Size())
			return nil

		case d.Type().IsRegular():
			info, infoErr := d.Info()
			if infoErr != nil {
				p.Warnings = append(p.Warnings,
					fmt.Sprintf("skipping unreadable path %s: %v", path, infoErr))
				return nil
			}
			addEntry(p, root, rel, path, dest, info.Size())
			return nil

		default:
			// Sockets, fifos and devices have no place in a home restore
			p.Warnings = append(p.Warnings,
				fmt.Sprintf("skipping special file %s", path))
			return nil
		}
	})
}

// addEntry appends one file and folds it into the totals in the same pass
func addEntry(p *domain.Plan, root domain.BackupRoot, rel, src, dest string, size int64) {
	conflict := fsops.FileExists(dest)

	p.Entries = append(p.Entries, domain.FileEntry{
		RelPath:    filepath.ToSlash(rel),
		SourcePath: src,
		DestPath:   dest,
		Size:       size,
		Category:   root.Category,
		Conflict:   conflict,
	})

	p.TotalFiles++
	p.TotalBytes += size

	stats := p.ByCategory[root.Category]
	stats.Files++
	stats.Bytes += size
	if conflict {
		stats.Conflicts++
		p.Conflicts++
	}
	p.ByCategory[root.Category] = stats
}
