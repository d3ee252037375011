package lspk

import "testing"

func TestPutNameFieldAndReadNullTerminated(t *testing.T) {
	buf := make([]byte, nameFieldSize)
	if err := putNameField(buf, "Characters/Hero.lsb"); err != nil {
		t.Fatalf("putNameField: %v", err)
	}
	got := readNullTerminated(buf)
	if got != "Characters/Hero.lsb" {
		t.Fatalf("got %q, want %q", got, "Characters/Hero.lsb")
	}
}

func TestPutNameFieldTooLong(t *testing.T) {
	long := make([]byte, nameFieldSize)
	for i := range long {
		long[i] = 'x'
	}
	buf := make([]byte, nameFieldSize)
	if err := putNameField(buf, string(long)); err != ErrNameTooLong {
		t.Fatalf("got %v, want ErrNameTooLong", err)
	}
}

func TestReadNullTerminatedNoTrailingNul(t *testing.T) {
	data := []byte("no-nul-here")
	if got := readNullTerminated(data); got != "no-nul-here" {
		t.Fatalf("got %q", got)
	}
}

func TestOffset48RoundTrip(t *testing.T) {
	const want = uint64(0x0000_BEEF_1234_5678 & 0xFFFFFFFFFFFF)
	lo, hi := splitOffset48(want)
	got := joinOffset48(lo, hi)
	if got != want {
		t.Fatalf("got %#x, want %#x", got, want)
	}
}

func TestLEHelpersRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	putLE32(buf, 0, 0xdeadbeef)
	putLE16(buf, 4, 0xbeef)
	putLE64(buf, 8, 0x0102030405060708)

	if got := le32(buf, 0); got != 0xdeadbeef {
		t.Fatalf("le32: got %#x", got)
	}
	if got := le16(buf, 4); got != 0xbeef {
		t.Fatalf("le16: got %#x", got)
	}
	if got := le64(buf, 8); got != 0x0102030405060708 {
		t.Fatalf("le64: got %#x", got)
	}
}
