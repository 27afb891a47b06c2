package ndgo

import "reflect"

// FromNested creates an array from a nested sequence such as
// [][]float64{{1, 2}, {3, 4}} or []any{[]any{1, 2}, []any{3, 4}}.
//
// The shape is inferred in one explicit pass by descending the first child
// at every depth; flattening then enforces that every sibling sequence has
// the inferred length, so jagged input fails with a ShapeError rather than
// being silently truncated. Leaves must be values convertible to T; anything
// else fails with an ElementTypeError. The storage allocation happens
// exactly once, here, in time linear in the element count.
func FromNested[T Scalar](nested any) (*Array[T], error) {
	v := unwrap(reflect.ValueOf(nested))
	shape, err := inferShape(v)
	if err != nil {
		return nil, err
	}
	a := &Array[T]{
		data:    make([]T, shape.Size()),
		shape:   shape,
		strides: shape.Strides(),
	}
	pos := 0
	if err := flatten(v, shape, 0, a.data, &pos); err != nil {
		return nil, err
	}
	return a, nil
}

// inferShape descends the first element at every depth to derive the shape.
func inferShape(v reflect.Value) (Shape, error) {
	var shape Shape
	for isSequence(v) {
		shape = append(shape, v.Len())
		if v.Len() == 0 {
			break
		}
		v = unwrap(v.Index(0))
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return shape, nil
}

func flatten[T Scalar](v reflect.Value, shape Shape, depth int, out []T, pos *int) error {
	if depth == len(shape) {
		if !v.IsValid() {
			return &ElementTypeError{Value: nil}
		}
		x, ok := scalarOf[T](v)
		if !ok {
			return &ElementTypeError{Value: v.Interface()}
		}
		out[*pos] = x
		*pos++
		return nil
	}
	if !isSequence(v) {
		return &ShapeError{Depth: depth, Want: shape[depth], Got: 0}
	}
	if v.Len() != shape[depth] {
		return &ShapeError{Depth: depth, Want: shape[depth], Got: v.Len()}
	}
	for i := 0; i < v.Len(); i++ {
		if err := flatten(unwrap(v.Index(i)), shape, depth+1, out, pos); err != nil {
			return err
		}
	}
	return nil
}

func isSequence(v reflect.Value) bool {
	k := v.Kind()
	return k == reflect.Slice || k == reflect.Array
}

// unwrap resolves interface values ([]any elements) to their concrete value.
func unwrap(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func scalarOf[T Scalar](v reflect.Value) (T, bool) {
	var zero T
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return T(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return T(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return T(v.Float()), true
	default:
		return zero, false
	}
}
