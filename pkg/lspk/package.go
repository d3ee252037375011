package lspk

import (
	"fmt"
	"os"
	"path/filepath"
)

// Find returns a pointer to the directory entry named name, or nil if no
// such entry exists. A linear scan is sufficient: archives in this
// format top out around 10^5 entries.
func (p *Package) Find(name string) *FileEntry {
	for i := range p.files {
		if p.files[i].Name == name {
			return &p.files[i]
		}
	}
	return nil
}

// Stat is Find's comma-ok counterpart, for callers that prefer the
// idiomatic "if ok" shape over a nil-pointer check.
func (p *Package) Stat(name string) (FileEntry, bool) {
	if e := p.Find(name); e != nil {
		return *e, true
	}
	return FileEntry{}, false
}

// Extract returns the decoded payload for name. It returns ErrFileNotFound
// if name is not in the directory.
func (p *Package) Extract(name string) ([]byte, error) {
	e := p.Find(name)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return p.ExtractEntry(*e)
}

// ExtractEntry returns the decoded payload for an already-resolved
// FileEntry, e.g. one obtained from Files(). Opening the part file is
// re-entrant across calls and safe to use concurrently across entries
// from multiple goroutines, provided the host filesystem supports
// concurrent positional reads.
func (p *Package) ExtractEntry(e FileEntry) ([]byte, error) {
	if e.SizeOnDisk == 0 {
		return []byte{}, nil
	}

	partPath := continuationPartPath(p.path, e.ArchivePart)
	f, err := os.Open(partPath)
	if err != nil {
		return nil, fmt.Errorf("lspk: opening part %q: %w", partPath, err)
	}
	defer f.Close()

	raw := make([]byte, e.SizeOnDisk)
	if _, err := f.ReadAt(raw, int64(e.Offset)); err != nil {
		return nil, fmt.Errorf("lspk: reading payload for %q: %w", e.Name, err)
	}

	if !e.IsCompressed() {
		return raw, nil
	}

	decoded, err := decompressBlock(raw, int(e.UncompressedSize))
	if err != nil {
		if p.log != nil {
			p.log.WithField("name", e.Name).WithField("error", err.Error()).Warn("lspk: LZ4 decode failed for entry")
		}
		return nil, err
	}
	return decoded, nil
}

// ExtractAll decompresses every entry into dir, recreating the archive's
// internal directory structure (entry names may contain "/" separators).
func (p *Package) ExtractAll(dir string) error {
	for _, e := range p.files {
		data, err := p.ExtractEntry(e)
		if err != nil {
			return err
		}

		outPath := filepath.Join(dir, filepath.FromSlash(e.Name))
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf("lspk: creating directory for %q: %w", e.Name, err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("lspk: writing %q: %w", outPath, err)
		}
	}
	return nil
}

// Close releases resources held by the Package. Readers re-open the
// source file on each Extract call and hold no persistent handle, so
// Close is currently a no-op retained for API symmetry with callers that
// defer it unconditionally (mirroring the teacher's Extractor/MPQ Close
// methods).
func (p *Package) Close() error {
	return nil
}
