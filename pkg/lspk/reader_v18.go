package lspk

import (
	"fmt"
	"io"
	"os"
)

const (
	v18HeaderSize  = 36
	v18EntrySize   = 272
	v1516EntrySize = 296
)

// readV18 parses the V18 header+directory layout (48-bit offsets, 272-byte
// entries).
func readV18(f *os.File, path string, log fieldLogger) (*Package, error) {
	return readV18Family(f, path, v18EntrySize)
}

// readV15V16 parses the same header shape as V18 but with the wider
// 296-byte entry used by versions 15 and 16. No known production archive
// uses these versions; spec mandates a single warning be emitted before
// attempting the parse, and that they remain read-only (no writer exists
// for them).
func readV15V16(f *os.File, path string, log fieldLogger) (*Package, error) {
	var verBuf [4]byte
	if _, err := f.ReadAt(verBuf[:], 4); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedHeader, err)
	}
	warnUntestedVersion(log, int(le32(verBuf[:], 0)))
	return readV18Family(f, path, v1516EntrySize)
}

func readV18Family(f *os.File, path string, entrySize int) (*Package, error) {
	if _, err := f.Seek(4, io.SeekStart); err != nil {
		return nil, err
	}

	r := newReader(f)
	var version uint32
	var fileListOffset uint64
	var fileListSize uint32
	var flags, priority uint8
	var md5 [16]byte
	var numParts uint16
	r.read(&version)
	r.read(&fileListOffset)
	r.read(&fileListSize)
	r.read(&flags)
	r.read(&priority)
	r.read(&md5)
	r.read(&numParts)
	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedHeader, r.err)
	}

	if _, err := f.Seek(int64(fileListOffset), io.SeekStart); err != nil {
		return nil, err
	}
	dr := newReader(f)
	var numFiles, compressedSize uint32
	dr.read(&numFiles)
	dr.read(&compressedSize)
	if dr.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedHeader, dr.err)
	}
	compressed := dr.bytes(int(compressedSize))
	if dr.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedEntry, dr.err)
	}

	dir, err := decompressBlock(compressed, int(numFiles)*entrySize)
	if err != nil {
		return nil, err
	}

	files := make([]FileEntry, numFiles)
	for i := range files {
		off := i * entrySize
		rec := dir[off : off+entrySize]
		if entrySize == v18EntrySize {
			files[i] = FileEntry{
				Name:             readNullTerminated(rec[:256]),
				Offset:           joinOffset48(le32(rec, 256), le16(rec, 260)),
				ArchivePart:      uint32(rec[262]),
				Flags:            rec[263],
				SizeOnDisk:       uint64(le32(rec, 264)),
				UncompressedSize: uint64(le32(rec, 268)),
				flagsPresent:     true,
			}
		} else {
			files[i] = FileEntry{
				Name:             readNullTerminated(rec[:256]),
				Offset:           le64(rec, 256),
				SizeOnDisk:       le64(rec, 264),
				UncompressedSize: le64(rec, 272),
				ArchivePart:      le32(rec, 280),
				Flags:            uint8(le32(rec, 284)),
				flagsPresent:     true,
			}
		}
	}

	return &Package{
		version: int(version),
		files:   files,
		path:    path,
		flags:   uint32(flags),
	}, nil
}
