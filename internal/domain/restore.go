package domain

// BackupRoot is a directory discovered inside the backup tree that matched
// one XDG category. Immutable once produced by the scanner.
type BackupRoot struct {
	// Category this directory maps to
	Category Category

	// SourcePath is the absolute path of the matched directory
	SourcePath string

	// DestPath is the absolute destination under the home directory
	DestPath string

	// Depth is the number of path components below the backup root at
	// which the directory was found (0 = direct child)
	Depth int
}

// FileEntry is a single file the plan intends to copy
type FileEntry struct {
	// RelPath is the path relative to the backup root, slash-separated.
	// Unique within its root.
	RelPath string

	// SourcePath is the absolute path of the file in the backup
	SourcePath string

	// DestPath is the absolute canonical destination path
	DestPath string

	// Size in bytes, captured at plan time
	Size int64

	// Category of the root this entry belongs to
	Category Category

	// Conflict is true iff DestPath already existed at plan time
	Conflict bool
}

// CategoryStats aggregates plan totals for one category
type CategoryStats struct {
	Files     int
	Bytes     int64
	Conflicts int
}

// Plan is the fully computed, immutable description of what a restore run
// would do. Built once per invocation and consumed read-only by both the
// dry-run reporter and the copy engine.
type Plan struct {
	// Entries ordered by category, then relative path
	Entries []FileEntry

	// Dirs are destination directories to create before copying,
	// including empty source directories
	Dirs []string

	// TotalFiles and TotalBytes cover every entry
	TotalFiles int
	TotalBytes int64

	// ByCategory breaks the totals down per XDG category
	ByCategory map[Category]CategoryStats

	// Conflicts counts entries with Conflict set
	Conflicts int

	// Warnings collected while enumerating (skipped roots, odd symlinks)
	Warnings []string
}
