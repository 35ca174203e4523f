package domain

import "errors"

// Filesystem errors
var (
	// ErrNotFound indicates the requested path does not exist
	ErrNotFound = errors.New("path not found")

	// ErrNotDirectory indicates expected a directory but got a file
	ErrNotDirectory = errors.New("not a directory")

	// ErrPermissionDenied indicates insufficient permissions
	ErrPermissionDenied = errors.New("permission denied")

	// ErrAlreadyExists indicates the destination already exists
	ErrAlreadyExists = errors.New("destination already exists")
)

// Restore errors
var (
	// ErrDestinationAppeared indicates a destination file was created
	// between planning and copying (late conflict)
	ErrDestinationAppeared = errors.New("destination appeared after planning")

	// ErrRestoreInProgress indicates another restore holds the home lock
	ErrRestoreInProgress = errors.New("restore already in progress")

	// ErrNoBackupRoots indicates the scan found no XDG directories
	ErrNoBackupRoots = errors.New("no XDG directories found in backup")

	// ErrAborted indicates the operator declined to proceed
	ErrAborted = errors.New("aborted by operator")
)

// Config errors
var (
	// ErrConfigNotFound indicates no config file was found
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates the config file is malformed
	ErrConfigInvalid = errors.New("invalid config")
)
