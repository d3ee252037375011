package lspk

import (
	"fmt"
	"os"
)

const (
	v10HeaderSize = 20
	v10EntrySize  = 280
)

// readV10 parses the V10 layout: "LSPK" + 20-byte header at offset 4,
// followed immediately by an uncompressed directory. Entry offsets are
// stored relative to the header's data_offset field; this reader adds
// data_offset back in so FileEntry.Offset is always an absolute position,
// per the in-memory convention spec §3 mandates.
func readV10(f *os.File, path string, log fieldLogger) (*Package, error) {
	if _, err := f.Seek(4, 0); err != nil {
		return nil, err
	}

	r := newReader(f)
	var version, dataOffset, fileListSize uint32
	var numParts uint16
	var flags, priority uint8
	var numFiles uint32
	r.read(&version)
	r.read(&dataOffset)
	r.read(&fileListSize)
	r.read(&numParts)
	r.read(&flags)
	r.read(&priority)
	r.read(&numFiles)
	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedHeader, r.err)
	}

	if _, err := f.Seek(4+int64(v10HeaderSize), 0); err != nil {
		return nil, err
	}
	dr := newReader(f)
	dir := dr.bytes(int(numFiles) * v10EntrySize)
	if dr.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedEntry, dr.err)
	}

	files := make([]FileEntry, numFiles)
	for i := range files {
		off := i * v10EntrySize
		rec := dir[off : off+v10EntrySize]
		relOffset := le32(rec, 256)
		files[i] = FileEntry{
			Name:             readNullTerminated(rec[:256]),
			Offset:           uint64(dataOffset) + uint64(relOffset),
			SizeOnDisk:       uint64(le32(rec, 260)),
			UncompressedSize: uint64(le32(rec, 264)),
			ArchivePart:      le32(rec, 268),
			Flags:            uint8(le32(rec, 272)),
			flagsPresent:     true,
		}
	}

	return &Package{
		version: int(version),
		files:   files,
		path:    path,
		flags:   uint32(flags),
	}, nil
}
