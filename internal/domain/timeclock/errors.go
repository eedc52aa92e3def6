package timeclock

import "errors"

// Batch-fatal import errors: no per-item processing occurs and no run row
// is written.
var (
	ErrMissingItems           = errors.New("import items are missing or empty")
	ErrDefaultProjectNotFound = errors.New("default project not found")
	ErrImportDirNotSet        = errors.New("timeclock import directory is not configured")
	ErrImportDirNotFound      = errors.New("timeclock import directory does not exist")
)
