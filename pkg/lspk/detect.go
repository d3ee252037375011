package lspk

import (
	"encoding/binary"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var lspkMagic = [4]byte{'L', 'S', 'P', 'K'}

// continuationNameRe matches "<base>_<N>.pak" (case-insensitive), the
// naming convention for continuation parts.
var continuationNameRe = regexp.MustCompile(`(?i)^(.+)_(\d+)\.pak$`)

// Detect classifies a byte stream as a valid LSPK archive, a continuation
// part of some other archive, or invalid, without reading the whole
// stream. pathHint, when non-empty, is used only to locate and verify a
// continuation's parent archive; detection of a self-contained archive
// never depends on it.
//
// Detect performs O(1) I/O against in plus, for continuation
// verification, one full read of the parent's directory.
func Detect(in io.ReadSeeker, pathHint string) (DetectionResult, error) {
	length, err := in.Seek(0, io.SeekEnd)
	if err != nil {
		return DetectionResult{}, err
	}

	// Probe 1: V13, signature at end of file.
	if length >= 8 {
		var tail [8]byte
		if _, err := in.Seek(length-8, io.SeekStart); err != nil {
			return DetectionResult{}, err
		}
		if _, err := io.ReadFull(in, tail[:]); err != nil {
			return DetectionResult{}, err
		}
		if string(tail[4:8]) == string(lspkMagic[:]) {
			headerSize := binary.LittleEndian.Uint32(tail[0:4])
			if int64(headerSize) <= length {
				if _, err := in.Seek(length-int64(headerSize), io.SeekStart); err != nil {
					return DetectionResult{}, err
				}
				var verBuf [4]byte
				if _, err := io.ReadFull(in, verBuf[:]); err == nil {
					version := int(binary.LittleEndian.Uint32(verBuf[:]))
					return DetectionResult{
						Kind:              DetectionOK,
						Version:           version,
						SignatureLocation: SignatureEnd,
					}, nil
				}
			}
		}
	}

	// Probe 2: V10/V15/V16/V18, signature at start of file.
	if length >= 8 {
		if _, err := in.Seek(0, io.SeekStart); err != nil {
			return DetectionResult{}, err
		}
		var head [8]byte
		if _, err := io.ReadFull(in, head[:]); err != nil {
			return DetectionResult{}, err
		}
		if string(head[0:4]) == string(lspkMagic[:]) {
			version := int(binary.LittleEndian.Uint32(head[4:8]))
			return DetectionResult{
				Kind:              DetectionOK,
				Version:           version,
				SignatureLocation: SignatureStart,
			}, nil
		}
	}

	// Probe 3: V7/V9, signatureless legacy archives.
	if length >= 4 {
		if _, err := in.Seek(0, io.SeekStart); err != nil {
			return DetectionResult{}, err
		}
		var verBuf [4]byte
		if _, err := io.ReadFull(in, verBuf[:]); err != nil {
			return DetectionResult{}, err
		}
		version := binary.LittleEndian.Uint32(verBuf[:])
		if version == 7 || version == 9 {
			return DetectionResult{
				Kind:              DetectionOK,
				Version:           int(version),
				SignatureLocation: SignatureNone,
			}, nil
		}
	}

	// Probe 4: continuation part, verified against its claimed parent.
	if pathHint != "" {
		if res, ok := detectContinuation(pathHint); ok {
			return res, nil
		}
	}

	return DetectionResult{Kind: DetectionInvalid}, nil
}

// detectContinuation checks whether pathHint's basename matches the
// continuation naming convention and, if so, whether the claimed parent
// is itself a valid archive whose directory references the claimed part.
func detectContinuation(pathHint string) (DetectionResult, bool) {
	base := filepath.Base(pathHint)
	m := continuationNameRe.FindStringSubmatch(base)
	if m == nil {
		return DetectionResult{}, false
	}
	partNumber, err := strconv.Atoi(m[2])
	if err != nil || partNumber <= 0 {
		return DetectionResult{}, false
	}

	parentName := m[1] + ".pak"
	// Case-insensitive ".pak" suffix is handled by the regex; rebuild the
	// parent name preserving the original extension case isn't required
	// by spec, ".pak" is canonical.
	parentPath := filepath.Join(filepath.Dir(pathHint), parentName)

	parent, err := Read(parentPath)
	if err != nil {
		return DetectionResult{}, false
	}
	defer parent.Close()

	for _, f := range parent.Files() {
		if int(f.ArchivePart) == partNumber {
			return DetectionResult{
				Kind:       DetectionContinuation,
				ParentPath: parentPath,
				PartNumber: partNumber,
			}, true
		}
	}
	return DetectionResult{}, false
}

// continuationPartPath derives the filesystem path of continuation part
// index part (>0) for a main archive at mainPath.
func continuationPartPath(mainPath string, part uint32) string {
	if part == 0 {
		return mainPath
	}
	dir := filepath.Dir(mainPath)
	base := filepath.Base(mainPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+"_"+strconv.FormatUint(uint64(part), 10)+ext)
}
