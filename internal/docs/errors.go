package docs

import "errors"

// Sentinel errors for discovery failures.
var (
	// ErrScanRootNotFound indicates the configured scan directory does not exist.
	ErrScanRootNotFound = errors.New("documentation scan root not found")

	// ErrWalkFailed indicates filesystem traversal of the scan root failed.
	ErrWalkFailed = errors.New("documentation directory walk failed")

	// ErrFileReadFailed indicates reading a discovered document failed.
	ErrFileReadFailed = errors.New("documentation file read failed")
)
