package lspk

// Flag bits for FileEntry.Flags. Only the LZ4 bit is defined; the rest of
// the byte is reserved and round-tripped opaquely.
const (
	FlagLZ4 = 0x02
)

// FileEntry is one directory record: a single archived file's name,
// location and size metadata.
type FileEntry struct {
	// Name is the path within the archive, forward-slash separated.
	Name string

	// Offset is the 0-based byte position of the payload within the part
	// file identified by ArchivePart.
	Offset uint64

	// SizeOnDisk is the number of bytes the payload occupies on disk:
	// the compressed length when compressed, otherwise the raw length.
	SizeOnDisk uint64

	// UncompressedSize is the original payload length. Zero is the
	// "stored uncompressed" sentinel for versions that define it (V10
	// always; V13/V18 when written with compress=false).
	UncompressedSize uint64

	// ArchivePart is the zero-based index of the part file holding the
	// payload. 0 is the main archive.
	ArchivePart uint32

	// Flags holds the on-disk flags byte, when the version has one.
	// flagsPresent is false for V9/V7, whose entries predate this field.
	Flags        uint8
	flagsPresent bool
}

// IsCompressed reports whether the entry's payload is LZ4-compressed.
//
// When the version carries an explicit flags field, this is simply the
// LZ4 bit. For legacy formats that predate flags (V9/V7), compression is
// inferred per spec: true iff UncompressedSize is nonzero and differs
// from SizeOnDisk.
func (e FileEntry) IsCompressed() bool {
	if e.flagsPresent {
		return e.Flags&FlagLZ4 != 0
	}
	return e.UncompressedSize != 0 && e.UncompressedSize != e.SizeOnDisk
}

// SignatureLocation identifies where in a file the LSPK magic was found.
type SignatureLocation int

const (
	// SignatureNone indicates a signatureless legacy archive (V7/V9).
	SignatureNone SignatureLocation = iota
	// SignatureStart indicates the signature was found at offset 0 (V10/V15/V16/V18).
	SignatureStart
	// SignatureEnd indicates the signature was found at end of file (V13).
	SignatureEnd
)

// DetectionResult is the outcome of probing a byte stream for an LSPK
// archive. Exactly one of the three shapes below is populated, indicated
// by Kind.
type DetectionResult struct {
	Kind DetectionKind

	// Populated when Kind == DetectionOK.
	Version           int
	SignatureLocation SignatureLocation

	// Populated when Kind == DetectionContinuation.
	ParentPath  string
	PartNumber  int
}

// DetectionKind discriminates the DetectionResult union.
type DetectionKind int

const (
	DetectionInvalid DetectionKind = iota
	DetectionOK
	DetectionContinuation
)

// Package is an archive's directory held in memory. It owns the parsed
// entries but not the file contents: the source file is re-opened on
// each Extract call.
type Package struct {
	version int
	files   []FileEntry
	path    string // filesystem path to the main part
	flags   uint32 // header-level flags, preserved for round-trip only

	log fieldLogger
}

// Version returns the on-disk format version this Package was read as.
func (p *Package) Version() int {
	return p.version
}

// Files returns the directory in on-disk order. The caller must not
// mutate the returned slice's FileEntry offsets/sizes and expect Extract
// to still work correctly against the real file.
func (p *Package) Files() []FileEntry {
	return p.files
}

// Path returns the filesystem path to the archive's main part.
func (p *Package) Path() string {
	return p.path
}
