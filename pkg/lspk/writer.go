package lspk

// WriterOptions configures archive construction. MaxPartSize is only
// meaningful for the V13 writer, the only version spec permits to split
// an archive across multiple physical parts on write.
type WriterOptions struct {
	// MaxPartSize, when nonzero, bounds the size of each physical part
	// file a V13 writer produces. Zero means "single file, no splitting".
	MaxPartSize uint64

	// Log receives diagnostics. When nil, diagnostics are discarded.
	Log fieldLogger
}

// pendingFile is a caller-enqueued (name, bytes, compress?) tuple awaiting
// Save.
type pendingFile struct {
	name     string
	data     []byte
	compress bool
}

// encodePayload decides, per spec's compression-decision rule, how a
// pending file is actually stored: compressed only if requested, the
// payload is non-empty, and the LZ4 result is strictly smaller than the
// original. Otherwise (including when LZ4 fails to compress at all) the
// payload is stored raw, with the uncompressed-sentinel convention
// (uncompressedSize==0, flags==0).
func encodePayload(pf pendingFile) (payload []byte, flags uint8, uncompressedSize uint64, err error) {
	if !pf.compress || len(pf.data) == 0 {
		return pf.data, 0, 0, nil
	}

	compressed, cErr := compressBlock(pf.data)
	if cErr == nil && len(compressed) < len(pf.data) {
		return compressed, FlagLZ4, uint64(len(pf.data)), nil
	}
	return pf.data, 0, 0, nil
}

// putEntryV10Layout writes one 280-byte directory record in the shared
// V10/V13 entry layout: name[256], offset, size_on_disk, uncompressed_size,
// archive_part, flags, crc, each a little-endian uint32.
func putEntryV10Layout(buf []byte, name string, offset, sizeOnDisk, uncompressedSize uint64, archivePart uint32, flags uint8) error {
	if err := putNameField(buf[:256], name); err != nil {
		return err
	}
	putLE32(buf, 256, uint32(offset))
	putLE32(buf, 260, uint32(sizeOnDisk))
	putLE32(buf, 264, uint32(uncompressedSize))
	putLE32(buf, 268, archivePart)
	putLE32(buf, 272, uint32(flags))
	putLE32(buf, 276, 0) // crc: always written zero, never validated on read
	return nil
}
