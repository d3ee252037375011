package lspk

import (
	"fmt"
	"os"
)

// ReadOptions configures Package construction.
type ReadOptions struct {
	// Log receives diagnostics (currently: the V15/V16 untested-format
	// warning, and LZ4 decode failures reported by Extract). When nil,
	// diagnostics are discarded.
	Log fieldLogger
}

// versionReader parses an already-opened, already-detected archive file
// into a Package. Implementations seek freely within f.
type versionReader func(f *os.File, path string, log fieldLogger) (*Package, error)

// readerDispatch is the version -> reader table from spec §6. It is a
// pure function, not an interface hierarchy: adding a version is one new
// entry here plus its versionReader implementation.
var readerDispatch = map[int]versionReader{
	7:  readV9,
	9:  readV9,
	10: readV10,
	13: readV13,
	15: readV15V16,
	16: readV15V16,
	18: readV18,
}

// Read opens and parses path as an LSPK archive using default options.
func Read(path string) (*Package, error) {
	return ReadWithOptions(path, ReadOptions{})
}

// ReadWithOptions opens and parses path as an LSPK archive.
//
// If path names a continuation part file directly (e.g. "Data_1.pak"),
// a *ContinuationError is returned naming the resolved main archive, per
// spec §7.
func ReadWithOptions(path string, opts ReadOptions) (*Package, error) {
	log := orDiscard(opts.Log)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	det, err := Detect(f, path)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("lspk: detecting archive version: %w", err)
	}

	switch det.Kind {
	case DetectionContinuation:
		f.Close()
		return nil, &ContinuationError{Path: path, ParentPath: det.ParentPath, PartNumber: det.PartNumber}
	case DetectionInvalid:
		f.Close()
		return nil, ErrInvalidSignature
	}

	reader, ok := readerDispatch[det.Version]
	if !ok {
		f.Close()
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, det.Version)
	}

	pkg, err := reader(f, path, log)
	f.Close()
	if err != nil {
		return nil, err
	}
	pkg.log = log
	return pkg, nil
}
