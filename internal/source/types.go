package source

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags records how the content was obtained and normalized.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (tests, stdin).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks content whose UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF marks content whose CRLF line endings were rewritten to LF.
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position. Both fields are 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}
