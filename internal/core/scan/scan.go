// Package scan walks a backup tree looking for directories that match XDG
// category names. A matched directory becomes a backup root and is treated
// as a self-contained unit: the walk does not descend into it, so a
// Documents/Music folder is never classified twice.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nward/homerestore/internal/domain"
	"github.com/nward/homerestore/internal/fsops"
)

// Result holds everything one scan produced
type Result struct {
	// Roots are all matched directories, possibly several per category
	Roots []domain.BackupRoot

	// Warnings describe subtrees that could not be read; the scan
	// continues past them
	Warnings []string
}

type pending struct {
	path  string
	depth int
}

// Scan walks backupRoot with unbounded depth and classifies every directory
// it encounters. Only an unreadable backup root itself is fatal; unreadable
// subdirectories become warnings. The walk is iterative with an explicit
// stack, so arbitrarily deep backups cannot exhaust the call stack.
func Scan(backupRoot, homeDir string) (*Result, error) {
	info, err := os.Stat(backupRoot)
	if err != nil {
		return nil, fsops.MapError(err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotDirectory, backupRoot)
	}

	result := &Result{}
	stack := []pending{{path: backupRoot, depth: -1}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// The backup root itself is never classified, only descended
		if cur.depth >= 0 {
			name := filepath.Base(cur.path)
			if cat, ok := domain.ParseCategory(name); ok {
				result.Roots = append(result.Roots, domain.BackupRoot{
					Category:   cat,
					SourcePath: cur.path,
					DestPath:   filepath.Join(homeDir, cat.DirName()),
					Depth:      cur.depth,
				})
				continue
			}
		}

		entries, err := os.ReadDir(cur.path)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("skipping unreadable directory %s: %v", cur.path, err))
			continue
		}

		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			stack = append(stack, pending{
				path:  filepath.Join(cur.path, e.Name()),
				depth: cur.depth + 1,
			})
		}
	}

	sortRoots(result.Roots)
	return result, nil
}

// sortRoots orders roots by category then source path so repeated scans of
// an unchanged tree are identical
func sortRoots(roots []domain.BackupRoot) {
	sort.Slice(roots, func(i, j int) bool {
		if roots[i].Category != roots[j].Category {
			return roots[i].Category < roots[j].Category
		}
		return roots[i].SourcePath < roots[j].SourcePath
	})
}
