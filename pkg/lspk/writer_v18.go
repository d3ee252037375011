package lspk

import (
	"fmt"
	"os"
)

// WriterV18 builds a single-part V18 archive: 36-byte header, 48-bit
// split offsets, LZ4-compressed 272-byte-entry directory. V18 archives
// are never split across parts on write.
type WriterV18 struct {
	path  string
	files []pendingFile
	log   fieldLogger
}

// NewWriterV18 creates a writer that will produce path on Save.
// opts.MaxPartSize is ignored: V18 has no multi-part writer.
func NewWriterV18(path string, opts WriterOptions) *WriterV18 {
	return &WriterV18{path: path, log: orDiscard(opts.Log)}
}

// AddFile enqueues name/data for inclusion in the archive. compress
// requests LZ4 block compression, honored only when it shrinks the
// payload (see encodePayload).
func (w *WriterV18) AddFile(name string, data []byte, compress bool) error {
	if len(name) >= nameFieldSize {
		return ErrNameTooLong
	}
	w.files = append(w.files, pendingFile{name: name, data: data, compress: compress})
	return nil
}

// AddFileFromPath reads fsPath and enqueues its contents under name.
func (w *WriterV18) AddFileFromPath(name, fsPath string, compress bool) error {
	data, err := os.ReadFile(fsPath)
	if err != nil {
		return fmt.Errorf("lspk: reading %q: %w", fsPath, err)
	}
	return w.AddFile(name, data, compress)
}

// putEntryV18Layout writes one 272-byte directory record in the V18
// entry layout: name[256], offset split into lo:u32/hi:u16, archive_part
// and flags as single bytes, then size_on_disk and uncompressed_size as
// little-endian uint32.
func putEntryV18Layout(buf []byte, name string, offset, sizeOnDisk, uncompressedSize uint64, archivePart uint32, flags uint8) error {
	if err := putNameField(buf[:256], name); err != nil {
		return err
	}
	lo, hi := splitOffset48(offset)
	putLE32(buf, 256, lo)
	putLE16(buf, 260, hi)
	buf[262] = uint8(archivePart)
	buf[263] = flags
	putLE32(buf, 264, uint32(sizeOnDisk))
	putLE32(buf, 268, uint32(uncompressedSize))
	return nil
}

// Save writes the archive to disk: payloads first, directory second,
// then backpatches the header with the real file-list location.
func (w *WriterV18) Save() error {
	out, err := os.Create(w.path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write([]byte("LSPK")); err != nil {
		return err
	}
	if _, err := out.Write(make([]byte, v18HeaderSize)); err != nil {
		return err
	}

	// Entry offsets are absolute (unlike V10's relative offsets), so they
	// must start past the signature and header, not at 0.
	offset := uint64(4 + v18HeaderSize)
	entries := make([]FileEntry, 0, len(w.files))
	for _, pf := range w.files {
		payload, flags, uncompressedSize, err := encodePayload(pf)
		if err != nil {
			return err
		}
		if len(payload) > 0 {
			if _, err := out.Write(payload); err != nil {
				return fmt.Errorf("lspk: writing payload for %q: %w", pf.name, err)
			}
		}
		entries = append(entries, FileEntry{
			Name:             pf.name,
			Offset:           offset,
			SizeOnDisk:       uint64(len(payload)),
			UncompressedSize: uncompressedSize,
			Flags:            flags,
			flagsPresent:     true,
		})
		offset += uint64(len(payload))
	}

	fileListOffset := offset

	dir := make([]byte, v18EntrySize*len(entries))
	for i, e := range entries {
		rec := dir[i*v18EntrySize : (i+1)*v18EntrySize]
		if err := putEntryV18Layout(rec, e.Name, e.Offset, e.SizeOnDisk, e.UncompressedSize, e.ArchivePart, e.Flags); err != nil {
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

	numFilesBuf := make([]byte, 4)
	putLE32(numFilesBuf, 0, uint32(len(entries)))
	if _, err := out.Write(numFilesBuf); err != nil {
		return err
	}
	compressedSizeBuf := make([]byte, 4)
	putLE32(compressedSizeBuf, 0, uint32(len(compressed)))
	if _, err := out.Write(compressedSizeBuf); err != nil {
		return err
	}
	if _, err := out.Write(compressed); err != nil {
		return err
	}

	header := make([]byte, v18HeaderSize)
	putLE32(header, 0, 18) // version
	putLE64(header, 4, fileListOffset)
	putLE32(header, 12, uint32(8+len(compressed))) // file_list_size
	header[16] = 0                                 // flags
	header[17] = 0                                 // priority
	// md5[16] (bytes 18..34) left zero: never computed, per spec.
	putLE16(header, 34, 1) // num_parts

	if _, err := out.Seek(4, 0); err != nil {
		return err
	}
	if _, err := out.Write(header); err != nil {
		return err
	}

	return nil
}
