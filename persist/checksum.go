package persist

import "hash/crc32"

// Checksum utilities for file integrity verification.
//
// Uses CRC32 (IEEE polynomial) for:
// - Fast computation (hardware-accelerated on modern CPUs)
// - Good error detection for storage corruption
// - Standard algorithm (well-tested, widely used)
//
// Note: CRC32 is NOT cryptographically secure. Do not use for
// tamper detection - only for detecting accidental corruption.

// Checksum computes the CRC32 checksum of the shape and data sections.
func Checksum(sections ...[]byte) uint32 {
	crc := crc32.NewIEEE()
	for _, s := range sections {
		_, _ = crc.Write(s)
	}
	return crc.Sum32()
}
