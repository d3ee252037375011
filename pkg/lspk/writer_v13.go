package lspk

import (
	"fmt"
	"os"
)

// WriterV13 builds a V13 archive: footer-based header, LZ4-compressed
// directory, and (when MaxPartSize is set) multi-part splitting. V13 is
// the only version this package can split across physical files on
// write, per spec.
type WriterV13 struct {
	path        string
	maxPartSize uint64
	files       []pendingFile
	log         fieldLogger
}

// NewWriterV13 creates a writer that will produce path (and, if
// opts.MaxPartSize is nonzero and exceeded, sibling "<base>_N.pak" parts)
// on Save.
func NewWriterV13(path string, opts WriterOptions) *WriterV13 {
	return &WriterV13{path: path, maxPartSize: opts.MaxPartSize, log: orDiscard(opts.Log)}
}

// AddFile enqueues name/data for inclusion in the archive. compress
// requests LZ4 block compression; it is honored only when the payload is
// non-empty and LZ4 actually shrinks it (see spec's compression-decision
// rule), otherwise the payload is stored raw.
func (w *WriterV13) AddFile(name string, data []byte, compress bool) error {
	if len(name) >= nameFieldSize {
		return ErrNameTooLong
	}
	w.files = append(w.files, pendingFile{name: name, data: data, compress: compress})
	return nil
}

// AddFileFromPath reads fsPath and enqueues its contents under name.
func (w *WriterV13) AddFileFromPath(name, fsPath string, compress bool) error {
	data, err := os.ReadFile(fsPath)
	if err != nil {
		return fmt.Errorf("lspk: reading %q: %w", fsPath, err)
	}
	return w.AddFile(name, data, compress)
}

// partState tracks one open output part file and its running size.
type partState struct {
	file *os.File
	size uint64
}

// Save writes the archive (and any continuation parts) to disk.
func (w *WriterV13) Save() error {
	parts := map[uint32]*partState{}
	defer func() {
		for _, p := range parts {
			p.file.Close()
		}
	}()

	ensurePart := func(idx uint32) (*partState, error) {
		if p, ok := parts[idx]; ok {
			return p, nil
		}
		path := continuationPartPath(w.path, idx)
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("lspk: creating part %q: %w", path, err)
		}
		p := &partState{file: f}
		parts[idx] = p
		return p, nil
	}

	if _, err := ensurePart(0); err != nil {
		return err
	}

	var currentPart uint32
	entries := make([]FileEntry, 0, len(w.files))

	for _, pf := range w.files {
		payload, flags, uncompressedSize, err := encodePayload(pf)
		if err != nil {
			return err
		}

		if w.maxPartSize > 0 {
			cur := parts[currentPart]
			// The policy that a payload never spans two parts means we must
			// roll to a fresh part before writing if it would overflow the
			// current one. This check is intentionally skipped when the
			// current part is still empty (cur.size == 0): a single payload
			// larger than MaxPartSize still lands in the current part rather
			// than looping forever trying to find a part big enough for it.
			// This mirrors a source quirk spec documents and preserves for
			// compatibility: the very first payload on a boundary still
			// writes to part 0 even if it alone exceeds MaxPartSize.
			if cur != nil && cur.size > 0 && cur.size+uint64(len(payload)) > w.maxPartSize {
				currentPart++
			}
		}

		p, err := ensurePart(currentPart)
		if err != nil {
			return err
		}

		offset := p.size
		if len(payload) > 0 {
			if _, err := p.file.Write(payload); err != nil {
				return fmt.Errorf("lspk: writing payload for %q: %w", pf.name, err)
			}
		}
		p.size += uint64(len(payload))

		entries = append(entries, FileEntry{
			Name:             pf.name,
			Offset:           offset,
			SizeOnDisk:       uint64(len(payload)),
			UncompressedSize: uncompressedSize,
			ArchivePart:      currentPart,
			Flags:            flags,
			flagsPresent:     true,
		})
	}

	return w.writeFooter(parts, entries, currentPart+1)
}

// writeFooter serialises the directory, LZ4-compresses it, and appends
// the footer (filelist + header + trailer + signature) to part 0 only.
func (w *WriterV13) writeFooter(parts map[uint32]*partState, entries []FileEntry, numParts uint32) error {
	main := parts[0]

	dir := make([]byte, v10EntrySize*len(entries))
	for i, e := range entries {
		rec := dir[i*v10EntrySize : (i+1)*v10EntrySize]
		if err := putEntryV10Layout(rec, e.Name, e.Offset, e.SizeOnDisk, e.UncompressedSize, e.ArchivePart, e.Flags); err != nil {
			return err
		}
	}

	var compressed []byte
	if len(dir) > 0 {
		c, err := compressBlock(dir)
		if err != nil {
			return fmt.Errorf("lspk: compressing directory: %w", err)
		}
		compressed = c
	}

	fileListOffset := main.size
	fileListSize := uint32(4 + len(compressed))

	numFilesBuf := make([]byte, 4)
	putLE32(numFilesBuf, 0, uint32(len(entries)))
	if _, err := main.file.Write(numFilesBuf); err != nil {
		return err
	}
	if _, err := main.file.Write(compressed); err != nil {
		return err
	}
	main.size += uint64(fileListSize)

	header := make([]byte, v13HeaderSize)
	putLE32(header, 0, 13) // version
	putLE32(header, 4, uint32(fileListOffset))
	putLE32(header, 8, fileListSize)
	putLE16(header, 12, uint16(numParts))
	header[14] = 0 // flags
	header[15] = 0 // priority
	// md5[16] left zero: never computed, per spec.
	if _, err := main.file.Write(header); err != nil {
		return err
	}

	trailer := make([]byte, 4)
	putLE32(trailer, 0, v13HeaderSize+v13FooterTrailer)
	if _, err := main.file.Write(trailer); err != nil {
		return err
	}

	if _, err := main.file.Write([]byte("LSPK")); err != nil {
		return err
	}

	return nil
}
