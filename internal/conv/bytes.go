package conv

import "unsafe"

// Element is the set of numeric element types the persistence layer moves
// between typed slices and raw bytes.
type Element interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// BytesView reinterprets a typed slice as its little-endian byte
// representation without copying. The returned slice aliases s and is valid
// only while s is reachable. Little-endian hosts only; callers validate the
// platform at startup.
func BytesView[T Element](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// SliceView reinterprets raw little-endian bytes as a typed slice without
// copying. The byte length must be an exact multiple of the element size and
// the data must be aligned for T; mmap'd regions are page-aligned, which
// satisfies every Element type.
func SliceView[T Element](b []byte) ([]T, bool) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(b)%size != 0 {
		return nil, false
	}
	n := len(b) / size
	if n == 0 {
		return nil, true
	}
	if uintptr(unsafe.Pointer(&b[0]))%uintptr(size) != 0 {
		return nil, false
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), true
}

// SliceCopy copies raw little-endian bytes into a freshly allocated typed
// slice. Used when the source buffer does not outlive the caller (network
// reads, decompression scratch).
func SliceCopy[T Element](b []byte) ([]T, bool) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(b)%size != 0 {
		return nil, false
	}
	n := len(b) / size
	if n == 0 {
		return nil, true
	}
	out := make([]T, n)
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), len(b)), b)
	return out, true
}
