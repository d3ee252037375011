package lspk

import (
	"fmt"
	"os"
)

const (
	v9HeaderSize = 21
	v9EntrySize  = 272
)

// readV9 parses the V7/V9 header+directory layout: a 21-byte header at
// offset 0 followed immediately by an uncompressed directory of
// 272-byte entries. No structural difference between V7 and V9 is
// documented by the sources this format was reverse-engineered from; both
// version tags dispatch here (spec §9 flags this as unverified for V7).
func readV9(f *os.File, path string, log fieldLogger) (*Package, error) {
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	r := newReader(f)
	var version, dataOffset, numParts, fileListSize uint32
	var littleEndian uint8
	var numFiles uint32
	r.read(&version)
	r.read(&dataOffset)
	r.read(&numParts)
	r.read(&fileListSize)
	r.read(&littleEndian)
	r.read(&numFiles)
	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedHeader, r.err)
	}

	dir := r.bytes(int(numFiles) * v9EntrySize)
	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedEntry, r.err)
	}

	files := make([]FileEntry, numFiles)
	for i := range files {
		off := i * v9EntrySize
		rec := dir[off : off+v9EntrySize]
		files[i] = FileEntry{
			Name:             readNullTerminated(rec[:256]),
			Offset:           uint64(le32(rec, 256)),
			SizeOnDisk:       uint64(le32(rec, 260)),
			UncompressedSize: uint64(le32(rec, 264)),
			ArchivePart:      le32(rec, 268),
			flagsPresent:     false,
		}
	}

	return &Package{
		version: int(version),
		files:   files,
		path:    path,
	}, nil
}
