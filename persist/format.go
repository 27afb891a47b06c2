package persist

import "errors"

const (
	// MagicNumber identifies ndgo array files (ASCII: "NDA0")
	MagicNumber = 0x4E444130
	// Version is the current file format version (v1.0.0)
	Version = 0x00010000

	// HeaderSize is the fixed size of the file header in bytes.
	HeaderSize = 64
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrInvalidCompression = errors.New("invalid compression type")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrInvalidFormat      = errors.New("invalid file format")
	ErrNotMappable        = errors.New("compressed files cannot be memory-mapped")
)

// FileHeader is the 64-byte header at the start of every array file.
// Layout keeps the data section of uncompressed files 8-byte aligned for
// mmap compatibility (HeaderSize + 8*rank is always a multiple of 8).
type FileHeader struct {
	Magic       uint32 // 0x4E444130 ("NDA0")
	Version     uint32 // File format version
	DType       uint8  // Element type, see ndgo.DType
	Compression uint8  // Data section compression, see Compression
	Flags       uint16 // Reserved for future use
	Rank        uint32 // Number of axes in the shape section
	StoredSize  uint64 // Data section size in bytes as stored
	RawSize     uint64 // Data section size after decompression
	Checksum    uint32 // CRC32 of shape section + stored data section
	Reserved    [28]byte
}
