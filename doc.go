// Package ndgo implements fixed-shape N-dimensional arrays with NumPy-style
// view semantics on top of a single flat storage buffer.
//
// # Overview
//
// An Array is described by a shape (per-axis extents), row-major strides and
// an offset into a shared data slice. Indexing into fewer axes than the
// array's rank yields a view, not a copy: the sub-array references the same
// storage, and mutations through any view are visible through every other
// view whose index range overlaps. Constructing a view is O(rank), never
// O(element count).
//
//	a, _ := ndgo.FromNested[float64]([][]float64{{1, 2}, {3, 4}})
//	row, _ := a.View(0)       // 1-D view sharing storage with a
//	_ = row.Set(9, 1)         // visible as a.At(0, 1) == 9
//	b := a.Copy()             // explicit deep copy, independent storage
//
// Copies never happen implicitly. When independent storage is wanted, call
// Copy explicitly; it compacts the logical elements into fresh contiguous
// storage.
//
// # Persistence
//
// The persist subpackage serializes arrays to a checksummed binary format
// with optional compression and supports zero-copy loads from memory-mapped
// files. The chunkstore subpackage stores large arrays as a grid of
// independently compressed chunks on any blobstore backend (local disk,
// MinIO, S3).
//
// # Thread Safety
//
// Arrays are not internally synchronized. Views share storage, so mutating
// an array while other goroutines read or write overlapping views requires
// external synchronization by the caller.
package ndgo
