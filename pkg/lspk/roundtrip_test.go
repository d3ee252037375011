package lspk

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

type wantFile struct {
	name string
	data []byte
}

func readBack(t *testing.T, path string, want []wantFile) *Package {
	t.Helper()

	pkg, err := Read(path)
	if err != nil {
		t.Fatalf("Read(%q): %v", path, err)
	}

	if len(pkg.Files()) != len(want) {
		t.Fatalf("got %d files, want %d", len(pkg.Files()), len(want))
	}

	for i, w := range want {
		got := pkg.Files()[i]
		if got.Name != w.name {
			t.Fatalf("entry %d: name = %q, want %q", i, got.Name, w.name)
		}
		data, err := pkg.ExtractEntry(got)
		if err != nil {
			t.Fatalf("ExtractEntry(%q): %v", got.Name, err)
		}
		if !bytes.Equal(data, w.data) {
			t.Fatalf("entry %q: data = %q, want %q", w.name, data, w.data)
		}
	}

	return pkg
}

func TestWriterV10RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Data.pak")
	want := []wantFile{
		{"Characters/Hero.lsb", []byte("hero data")},
		{"Characters/Villain.lsb", []byte("villain data")},
		{"empty.txt", []byte{}},
	}

	w := NewWriterV10(path, WriterOptions{})
	for _, f := range want {
		if err := w.AddFile(f.name, f.data); err != nil {
			t.Fatalf("AddFile(%q): %v", f.name, err)
		}
	}
	if err := w.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	pkg := readBack(t, path, want)
	if pkg.Version() != 10 {
		t.Fatalf("Version() = %d, want 10", pkg.Version())
	}
	for _, e := range pkg.Files() {
		if e.IsCompressed() {
			t.Fatalf("entry %q: V10 never compresses", e.Name)
		}
	}
}

func TestWriterV13RoundTripSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Data.pak")
	compressible := bytes.Repeat([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"), 64)
	want := []wantFile{
		{"Scripts/Main.lua", compressible},
		{"small.txt", []byte("x")},
	}

	w := NewWriterV13(path, WriterOptions{})
	if err := w.AddFile(want[0].name, want[0].data, true); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if err := w.AddFile(want[1].name, want[1].data, true); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if err := w.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	pkg := readBack(t, path, want)
	if pkg.Version() != 13 {
		t.Fatalf("Version() = %d, want 13", pkg.Version())
	}

	entries := pkg.Files()
	if !entries[0].IsCompressed() {
		t.Fatalf("expected highly repetitive payload to be stored compressed")
	}
	if entries[1].IsCompressed() {
		t.Fatalf("expected single-byte payload to be stored raw (LZ4 cannot shrink it)")
	}
}

func TestWriterV13RoundTripMultiPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Data.pak")
	want := []wantFile{
		{"a.txt", []byte("aaaaaaaaaa")},
		{"b.txt", []byte("bbbbbbbbbb")},
		{"c.txt", []byte("cccccccccc")},
	}

	w := NewWriterV13(path, WriterOptions{MaxPartSize: 15})
	for _, f := range want {
		if err := w.AddFile(f.name, f.data, false); err != nil {
			t.Fatalf("AddFile(%q): %v", f.name, err)
		}
	}
	if err := w.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	pkg := readBack(t, path, want)

	seenParts := map[uint32]bool{}
	for _, e := range pkg.Files() {
		seenParts[e.ArchivePart] = true
	}
	if len(seenParts) < 2 {
		t.Fatalf("expected entries to span multiple parts given MaxPartSize=15, got parts %v", seenParts)
	}
}

func TestWriterV18RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Data.pak")
	compressible := bytes.Repeat([]byte("zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"), 64)
	want := []wantFile{
		{"Mods/Shared/meta.lsx", compressible},
		{"tiny.txt", []byte("t")},
	}

	w := NewWriterV18(path, WriterOptions{})
	if err := w.AddFile(want[0].name, want[0].data, true); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if err := w.AddFile(want[1].name, want[1].data, true); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if err := w.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	pkg := readBack(t, path, want)
	if pkg.Version() != 18 {
		t.Fatalf("Version() = %d, want 18", pkg.Version())
	}
	if !pkg.Files()[0].IsCompressed() {
		t.Fatalf("expected highly repetitive payload to be stored compressed")
	}
}

func TestExtractUnknownFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Data.pak")
	w := NewWriterV10(path, WriterOptions{})
	if err := w.AddFile("present.txt", []byte("hi")); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if err := w.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	pkg, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, err := pkg.Extract("missing.txt"); err == nil {
		t.Fatalf("expected ErrFileNotFound")
	}
}

func TestExtractAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Data.pak")
	want := []wantFile{
		{"Nested/Dir/file.txt", []byte("nested content")},
		{"root.txt", []byte("root content")},
	}

	w := NewWriterV10(path, WriterOptions{})
	for _, f := range want {
		if err := w.AddFile(f.name, f.data); err != nil {
			t.Fatalf("AddFile(%q): %v", f.name, err)
		}
	}
	if err := w.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	pkg, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	outDir := t.TempDir()
	if err := pkg.ExtractAll(outDir); err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}

	for _, f := range want {
		data, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(f.name)))
		if err != nil {
			t.Fatalf("reading extracted %q: %v", f.name, err)
		}
		if !bytes.Equal(data, f.data) {
			t.Fatalf("extracted %q = %q, want %q", f.name, data, f.data)
		}
	}
}
