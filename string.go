package ndgo

import (
	"fmt"
	"strings"
)

// String renders the array as nested brackets, e.g. "[[1 2] [3 4]]".
// Intended for tests and debugging, not for serialization.
func (a *Array[T]) String() string {
	var sb strings.Builder
	a.writeTo(&sb)
	return sb.String()
}

func (a *Array[T]) writeTo(sb *strings.Builder) {
	sb.WriteByte('[')
	if len(a.shape) == 1 {
		for i := 0; i < a.shape[0]; i++ {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(sb, "%v", a.data[a.offset+i*a.strides[0]])
		}
		sb.WriteByte(']')
		return
	}
	for i := 0; i < a.shape[0]; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		v, _ := a.View(i)
		v.writeTo(sb)
	}
	sb.WriteByte(']')
}
