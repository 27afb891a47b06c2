// Package persist serializes arrays to a checksummed binary file format.
//
// A file is a 64-byte header, a shape section (one uint64 per axis) and a
// data section holding the elements in row-major little-endian order,
// optionally compressed with zstd or lz4. The data section of an
// uncompressed file starts at an 8-byte aligned offset, so Map can hand out
// arrays that alias the memory-mapped file bytes without any copy.
//
// All multi-byte values are little-endian. Integrity is verified with a
// CRC32 over the shape and data sections on every load.
package persist
