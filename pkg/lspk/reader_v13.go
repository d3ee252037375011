package lspk

import (
	"fmt"
	"io"
	"os"
)

const (
	v13HeaderSize    = 32
	v13FooterTrailer = 8 // header_size:u32 + "LSPK"
)

// readV13 parses the footer-based V13 layout: a 32-byte header located
// header_size bytes before end of file (header_size itself stored in the
// last 8 bytes, alongside the signature), and an LZ4-compressed directory
// whose absolute file offset and size are given by the header.
func readV13(f *os.File, path string, log fieldLogger) (*Package, error) {
	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	if _, err := f.Seek(end-8, io.SeekStart); err != nil {
		return nil, err
	}
	hr := newReader(f)
	var headerSize uint32
	hr.read(&headerSize)
	if hr.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedHeader, hr.err)
	}

	if _, err := f.Seek(end-int64(headerSize), io.SeekStart); err != nil {
		return nil, err
	}

	r := newReader(f)
	var version, fileListOffset, fileListSize uint32
	var numParts uint16
	var flags, priority uint8
	var md5 [16]byte
	r.read(&version)
	r.read(&fileListOffset)
	r.read(&fileListSize)
	r.read(&numParts)
	r.read(&flags)
	r.read(&priority)
	r.read(&md5)
	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedHeader, r.err)
	}

	if _, err := f.Seek(int64(fileListOffset), io.SeekStart); err != nil {
		return nil, err
	}
	dr := newReader(f)
	var numFiles uint32
	dr.read(&numFiles)
	if dr.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedHeader, dr.err)
	}
	if fileListSize < 4 {
		return nil, fmt.Errorf("%w: file_list_size too small", ErrTruncatedHeader)
	}
	compressed := dr.bytes(int(fileListSize) - 4)
	if dr.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedEntry, dr.err)
	}

	dir, err := decompressBlock(compressed, int(numFiles)*v10EntrySize)
	if err != nil {
		return nil, err
	}

	files := make([]FileEntry, numFiles)
	for i := range files {
		off := i * v10EntrySize
		rec := dir[off : off+v10EntrySize]
		files[i] = FileEntry{
			Name:             readNullTerminated(rec[:256]),
			Offset:           uint64(le32(rec, 256)),
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
