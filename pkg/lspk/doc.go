/*

Package lspk is a decoder/encoder for the "LSPK" archive format used by a
family of role-playing-game titles.

An LSPK archive bundles thousands of named files (game assets) behind a
single directory, with optional per-file LZ4 block compression, and may be
split across several physical "part" files when a size limit is configured
on write. The on-disk layout has evolved across five format generations,
identified by an integer version field:

  - 7, 9 — legacy, signatureless, uncompressed directory
  - 10   — signature at start of file, uncompressed directory
  - 13   — signature at end of file, LZ4-compressed directory, the only
    version this package can split into multiple parts on write
  - 15, 16, 18 — signature at start of file, LZ4-compressed directory,
    48-bit (V18) or 64-bit (V15/V16) payload offsets

Information sources: the version-by-version byte layouts this package implements are taken
from reverse-engineering notes for this archive family; there is no public
specification. Versions 15 and 16 are untested — no known production
archive has been observed in the wild using them — and are read-only.

Typical use:

	pkg, err := lspk.Read("Data.pak")
	if err != nil {
		// handle err
	}
	defer pkg.Close()

	data, err := pkg.Extract("Characters/Hero.lsb")

Writing:

	w := lspk.NewWriterV13("Data.pak", lspk.WriterOptions{MaxPartSize: 1 << 30})
	w.AddFile("Characters/Hero.lsb", data, true)
	if err := w.Save(); err != nil {
		// handle err
	}

*/
package lspk
