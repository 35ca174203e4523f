// Package fsops provides the low-level filesystem primitives the restore
// pipeline orchestrates: exclusive-create file copies, restore-variant
// naming, and OS-to-domain error mapping.
package fsops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nward/homerestore/internal/domain"
)

// CopyExclusive copies src to dst, failing with domain.ErrAlreadyExists if
// dst exists. The exclusive create is what makes plan-time conflict flags
// trustworthy: a destination that appeared after planning is detected here
// instead of being overwritten.
func CopyExclusive(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, MapError(err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return 0, MapError(err)
	}

	n, copyErr := io.Copy(out, in)
	closeErr := out.Close()

	if copyErr != nil {
		os.Remove(dst)
		return 0, copyErr
	}
	if closeErr != nil {
		os.Remove(dst)
		return 0, closeErr
	}

	preservePermissions(src, dst)
	return n, nil
}

// CopyToVariant copies src to the restore-variant sibling of dst, retrying
// with incrementing suffixes when a variant already exists. Returns the path
// actually written.
func CopyToVariant(src, dst string) (string, int64, error) {
	candidate := VariantPath(dst, 0)
	n, err := CopyExclusive(src, candidate)
	if err == nil {
		return candidate, n, nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return "", 0, err
	}

	for i := 2; ; i++ {
		candidate = VariantPath(dst, i)
		n, err = CopyExclusive(src, candidate)
		if err == nil {
			return candidate, n, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return "", 0, err
		}
	}
}

// VariantPath computes the .restore sibling of dest. The suffix sits
// immediately before the extension: notes.txt becomes notes.restore.txt,
// or notes.restore.2.txt for n >= 2. Files without an extension get a bare
// .restore suffix. This naming is the on-disk compatibility contract.
func VariantPath(dest string, n int) string {
	dir := filepath.Dir(dest)
	base := filepath.Base(dest)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	// A leading dot is a hidden file, not an extension
	if stem == "" {
		stem = ext
		ext = ""
	}

	var name string
	if n >= 2 {
		name = fmt.Sprintf("%s.restore.%d%s", stem, n, ext)
	} else {
		name = stem + ".restore" + ext
	}
	return filepath.Join(dir, name)
}

// Exists reports whether path exists at all
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// FileExists reports whether path exists and is a regular file after
// following symlinks
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// RemoveFile deletes a single file, mapping errors to the domain
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil {
		return MapError(err)
	}
	return nil
}

// PruneEmptyDirs removes root and its subdirectories bottom-up, leaving any
// directory that still has contents. Best effort; the first structural error
// is returned but partially pruned trees are fine.
func PruneEmptyDirs(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return MapError(err)
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := PruneEmptyDirs(filepath.Join(root, e.Name())); err != nil {
				return err
			}
		}
	}
	// Remove fails on non-empty directories, which is exactly what we want
	if err := os.Remove(root); err != nil && !isNotEmpty(err) {
		return MapError(err)
	}
	return nil
}

func isNotEmpty(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		msg := pathErr.Err.Error()
		return strings.Contains(msg, "not empty")
	}
	return false
}

func preservePermissions(src, dst string) {
	if info, err := os.Stat(src); err == nil {
		_ = os.Chmod(dst, info.Mode().Perm())
	}
}

// MapError converts OS errors to domain errors
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	if os.IsPermission(err) {
		return fmt.Errorf("%w: %v", domain.ErrPermissionDenied, err)
	}
	if os.IsExist(err) {
		return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
	}
	return err
}
