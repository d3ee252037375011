package lspk

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by readers, writers and the package facade.
var (
	// ErrInvalidSignature indicates the input has no recognisable LSPK header.
	ErrInvalidSignature = errors.New("lspk: invalid or missing archive signature")

	// ErrUnsupportedVersion indicates the version field parsed but no reader
	// or writer exists for it.
	ErrUnsupportedVersion = errors.New("lspk: unsupported archive version")

	// ErrTruncatedHeader indicates fewer bytes were available than the
	// header layout requires.
	ErrTruncatedHeader = errors.New("lspk: truncated archive header")

	// ErrTruncatedEntry indicates fewer bytes were available than the
	// directory's entry layout requires.
	ErrTruncatedEntry = errors.New("lspk: truncated directory entry")

	// ErrCompressionFailed indicates an LZ4 block failed to decode to its
	// expected size.
	ErrCompressionFailed = errors.New("lspk: LZ4 decompression failed")

	// ErrFileNotFound indicates a requested name is not present in the
	// archive's directory.
	ErrFileNotFound = errors.New("lspk: file not found in archive")

	// ErrNameTooLong indicates a file name exceeds the 255-byte on-disk
	// name field (plus terminating NUL).
	ErrNameTooLong = errors.New("lspk: file name exceeds 255 bytes")
)

// ContinuationError is returned when a continuation part file is opened
// directly instead of through its main archive. It names the opened part,
// the resolved parent, and the part number so callers can redirect.
type ContinuationError struct {
	Path       string
	ParentPath string
	PartNumber int
}

func (e *ContinuationError) Error() string {
	return fmt.Sprintf("lspk: %q is continuation part %d of %q; open the main archive instead",
		e.Path, e.PartNumber, e.ParentPath)
}

// Is reports whether target is ErrInvalidSignature, so callers that only
// check for generic invalidity via errors.Is still match continuation
// files without needing to know about ContinuationError specifically.
func (e *ContinuationError) Is(target error) bool {
	return target == ErrInvalidSignature
}
