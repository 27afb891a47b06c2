package ndgo

import "reflect"

// Scalar is the set of element types an Array can hold.
type Scalar interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// DType identifies an element type in persisted data.
type DType uint8

const (
	DTypeInvalid DType = iota
	DTypeInt32
	DTypeInt64
	DTypeFloat32
	DTypeFloat64
)

// ItemSize returns the storage size of one element in bytes.
func (d DType) ItemSize() int {
	switch d {
	case DTypeInt32, DTypeFloat32:
		return 4
	case DTypeInt64, DTypeFloat64:
		return 8
	default:
		return 0
	}
}

func (d DType) String() string {
	switch d {
	case DTypeInt32:
		return "int32"
	case DTypeInt64:
		return "int64"
	case DTypeFloat32:
		return "float32"
	case DTypeFloat64:
		return "float64"
	default:
		return "invalid"
	}
}

// DTypeByName returns a DType by its stable name.
//
// This is used for self-describing persistence formats (array files, chunk
// manifests) that store the dtype name in their header.
func DTypeByName(name string) (DType, bool) {
	switch name {
	case "int32":
		return DTypeInt32, true
	case "int64":
		return DTypeInt64, true
	case "float32":
		return DTypeFloat32, true
	case "float64":
		return DTypeFloat64, true
	default:
		return DTypeInvalid, false
	}
}

// DTypeOf returns the DType for the element type T.
// Kind-based so that defined types over a supported base type resolve too.
func DTypeOf[T Scalar]() DType {
	var zero T
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Int32:
		return DTypeInt32
	case reflect.Int64:
		return DTypeInt64
	case reflect.Float32:
		return DTypeFloat32
	case reflect.Float64:
		return DTypeFloat64
	default:
		return DTypeInvalid
	}
}
