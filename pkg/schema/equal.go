package schema

import (
	"math"
	"reflect"
)

// Equal reports whether two canonical values are deeply equal, treating NaN
// as equal to NaN.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return ok && floatEqual(x, y)
	case complex128:
		y, ok := b.(complex128)
		return ok && floatEqual(real(x), real(y)) && floatEqual(imag(x), imag(y))
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Tuple:
		y, ok := b.(Tuple)
		return ok && Equal(x.items, y.items)
	case *Object:
		y, ok := b.(*Object)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == y
		}
		if x.kind.name != y.kind.name || len(x.values) != len(y.values) {
			return false
		}
		for name, v := range x.values {
			w, set := y.values[name]
			if !set || !Equal(v, w) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

func floatEqual(x, y float64) bool {
	return x == y || (math.IsNaN(x) && math.IsNaN(y))
}
