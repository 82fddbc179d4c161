package state

import "reflect"

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// Same reports whether two values are the same by reference.
// Pointer-shaped values (pointers, maps, slices, channels, functions)
// compare by identity; comparable values compare with ==; everything
// else is treated as different. Two distinct instances with identical
// contents are different under this policy.
func Same[T any](a, b T) bool {
	return sameAny(a, b)
}

func sameAny(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	default:
		if va.Comparable() {
			return va.Equal(vb)
		}
		return false
	}
}
