package lspk

import (
	"encoding/binary"
	"io"
)

// nameFieldSize is the on-disk width of a file name slot: 255 bytes of
// name plus a terminating NUL, per spec.
const nameFieldSize = 256

// readNullTerminated returns the string in data up to the first NUL byte,
// or the whole slice if no NUL is present.
func readNullTerminated(data []byte) string {
	for i, b := range data {
		if b == 0 {
			return string(data[:i])
		}
	}
	return string(data)
}

// putNameField writes name into a nameFieldSize-byte null-padded field.
// It reports ErrNameTooLong if name (plus its terminating NUL) does not fit.
func putNameField(buf []byte, name string) error {
	if len(name) >= nameFieldSize {
		return ErrNameTooLong
	}
	for i := range buf[:nameFieldSize] {
		buf[i] = 0
	}
	copy(buf, name)
	return nil
}

// splitOffset48 splits a 48-bit absolute offset into its low 32 bits and
// high 16 bits, as used by the V18 entry layout.
func splitOffset48(off uint64) (lo uint32, hi uint16) {
	return uint32(off & 0xFFFFFFFF), uint16((off >> 32) & 0xFFFF)
}

// joinOffset48 reassembles a 48-bit absolute offset from its low 32 bits
// and high 16 bits.
func joinOffset48(lo uint32, hi uint16) uint64 {
	return uint64(lo) | (uint64(hi) << 32)
}

// reader wraps an io.Reader with a sticky error, mirroring the teacher's
// read-until-first-error idiom: once any field read fails, subsequent
// calls become no-ops so callers can fire off a whole struct's fields and
// check err exactly once at the end.
type reader struct {
	r   io.Reader
	err error
}

func newReader(r io.Reader) *reader {
	return &reader{r: r}
}

func (s *reader) read(data interface{}) error {
	if s.err != nil {
		return s.err
	}
	s.err = binary.Read(s.r, binary.LittleEndian, data)
	return s.err
}

func (s *reader) bytes(n int) []byte {
	if s.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, s.err = io.ReadFull(s.r, buf)
	return buf
}

// le32 / le16 / le64 read little-endian fixed-width integers directly out
// of a byte slice at the given offset, for the directory-entry unmarshal
// paths that work against an already-buffered block rather than a stream.
func le32(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off:]) }
func le16(b []byte, off int) uint16 { return binary.LittleEndian.Uint16(b[off:]) }
func le64(b []byte, off int) uint64 { return binary.LittleEndian.Uint64(b[off:]) }

func putLE32(b []byte, off int, v uint32) { binary.LittleEndian.PutUint32(b[off:], v) }
func putLE16(b []byte, off int, v uint16) { binary.LittleEndian.PutUint16(b[off:], v) }
func putLE64(b []byte, off int, v uint64) { binary.LittleEndian.PutUint64(b[off:], v) }
