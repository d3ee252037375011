package lspk

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// compressBlock LZ4-encodes src as a single block (no frame container).
// It returns the encoded bytes, which may be longer than src for
// incompressible input — callers decide whether to keep the compressed
// form based on the resulting size, per spec's compression-decision rule.
func compressBlock(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	var c lz4.Compressor
	n, err := c.CompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("lspk: LZ4 compress: %w", err)
	}
	if n == 0 {
		// pierrec/lz4 reports n==0 only when dst is smaller than
		// CompressBlockBound, which dst never is here; incompressible input
		// otherwise comes back as a longer block. Treat n==0 as "does not
		// compress" so the caller falls back to storing the payload raw.
		return nil, fmt.Errorf("lspk: LZ4 compress: incompressible input")
	}
	return dst[:n], nil
}

// decompressBlock LZ4-decodes src into exactly expectedSize bytes.
// expectedSize must be known up front; the LZ4 block format carries no
// length prefix of its own.
func decompressBlock(src []byte, expectedSize int) ([]byte, error) {
	if expectedSize == 0 {
		return nil, nil
	}
	dst := make([]byte, expectedSize)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompressionFailed, err)
	}
	if n != expectedSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrCompressionFailed, n, expectedSize)
	}
	return dst, nil
}
