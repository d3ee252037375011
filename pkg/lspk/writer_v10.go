package lspk

import (
	"fmt"
	"os"
)

// WriterV10 builds a single-file V10 archive. V10 never compresses:
// unlike V13/V18, AddFile has no compress parameter to expose.
type WriterV10 struct {
	path  string
	files []pendingFile
	log   fieldLogger
}

// NewWriterV10 creates a writer that will produce path on Save.
func NewWriterV10(path string, opts WriterOptions) *WriterV10 {
	return &WriterV10{path: path, log: orDiscard(opts.Log)}
}

// AddFile enqueues name/data for inclusion in the archive, stored
// uncompressed.
func (w *WriterV10) AddFile(name string, data []byte) error {
	if len(name) >= nameFieldSize {
		return ErrNameTooLong
	}
	w.files = append(w.files, pendingFile{name: name, data: data})
	return nil
}

// AddFileFromPath reads fsPath and enqueues its contents under name.
func (w *WriterV10) AddFileFromPath(name, fsPath string) error {
	data, err := os.ReadFile(fsPath)
	if err != nil {
		return fmt.Errorf("lspk: reading %q: %w", fsPath, err)
	}
	return w.AddFile(name, data)
}

// Save writes the archive to disk.
func (w *WriterV10) Save() error {
	numFiles := len(w.files)
	dataOffset := uint32(4 + v10HeaderSize + v10EntrySize*numFiles)

	out, err := os.Create(w.path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write([]byte("LSPK")); err != nil {
		return err
	}

	fileListSize := uint32(v10EntrySize * numFiles)
	header := make([]byte, v10HeaderSize)
	putLE32(header, 0, 10)          // version
	putLE32(header, 4, dataOffset)  // data_offset
	putLE32(header, 8, fileListSize) // file_list_size
	putLE16(header, 12, 1)          // num_parts
	header[14] = 0                  // flags
	header[15] = 0                  // priority
	putLE32(header, 16, uint32(numFiles))
	if _, err := out.Write(header); err != nil {
		return err
	}

	dir := make([]byte, v10EntrySize*numFiles)
	var runningOffset uint32
	for i, pf := range w.files {
		rec := dir[i*v10EntrySize : (i+1)*v10EntrySize]
		if err := putEntryV10Layout(rec, pf.name, uint64(runningOffset), uint64(len(pf.data)), 0, 0, 0); err != nil {
			return err
		}
		runningOffset += uint32(len(pf.data))
	}
	if _, err := out.Write(dir); err != nil {
		return err
	}

	for _, pf := range w.files {
		if _, err := out.Write(pf.data); err != nil {
			return err
		}
	}

	return nil
}
