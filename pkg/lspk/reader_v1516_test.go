package lspk

import (
	"os"
	"path/filepath"
	"testing"
)

// buildV1516Archive hand-assembles a minimal V15/V16-family archive: "LSPK"
// + 36-byte header, payload, then an LZ4-compressed directory of 296-byte
// entries. No writer exists for this family (read-only per spec), so tests
// build the on-disk bytes directly.
func buildV1516Archive(t *testing.T, version uint32, name string, payload []byte) string {
	t.Helper()

	const headerSize = v18HeaderSize
	payloadOffset := uint64(4 + headerSize)
	fileListOffset := payloadOffset + uint64(len(payload))

	rec := make([]byte, v1516EntrySize)
	if err := putNameField(rec[:256], name); err != nil {
		t.Fatalf("putNameField: %v", err)
	}
	putLE64(rec, 256, payloadOffset)
	putLE64(rec, 264, uint64(len(payload)))
	putLE64(rec, 272, 0) // uncompressed_size sentinel: stored raw
	putLE32(rec, 280, 0) // archive_part
	putLE32(rec, 284, 0) // flags

	compressedDir, err := compressBlock(rec)
	if err != nil {
		t.Fatalf("compressBlock: %v", err)
	}

	buf := make([]byte, fileListOffset+8+uint64(len(compressedDir)))
	copy(buf[0:4], "LSPK")
	putLE32(buf, 4, version)
	putLE64(buf, 8, fileListOffset)
	putLE32(buf, 16, uint32(8+len(compressedDir)))
	buf[20] = 0 // flags
	buf[21] = 0 // priority
	// md5 [16]byte at 22..37 left zero
	putLE16(buf, 38, 1) // num_parts

	copy(buf[payloadOffset:], payload)

	off := int(fileListOffset)
	putLE32(buf, off, 1) // num_files
	putLE32(buf, off+4, uint32(len(compressedDir)))
	copy(buf[off+8:], compressedDir)

	path := filepath.Join(t.TempDir(), "Data.pak")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestReadV16Family(t *testing.T) {
	path := buildV1516Archive(t, 16, "legacy_wide.dat", []byte("wide entry payload"))

	pkg, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if pkg.Version() != 16 {
		t.Fatalf("Version() = %d, want 16", pkg.Version())
	}

	data, err := pkg.Extract("legacy_wide.dat")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if string(data) != "wide entry payload" {
		t.Fatalf("got %q", data)
	}
}
