// File: algo/predicates.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package algo

import "github.com/momentics/hioload-ring/api"

// AllOf reports whether pred holds for every element. True for an empty range.
func AllOf[T any, I api.Iterator[T, I]](first, last I, pred func(T) bool) bool {
	for ; !first.Equal(last); first = first.Next() {
		if !pred(first.Get()) {
			return false
		}
	}
	return true
}

// AnyOf reports whether pred holds for at least one element.
func AnyOf[T any, I api.Iterator[T, I]](first, last I, pred func(T) bool) bool {
	for ; !first.Equal(last); first = first.Next() {
		if pred(first.Get()) {
			return true
		}
	}
	return false
}

// NoneOf reports whether pred holds for no element.
func NoneOf[T any, I api.Iterator[T, I]](first, last I, pred func(T) bool) bool {
	return !AnyOf(first, last, pred)
}

// OneOf reports whether pred holds for exactly one element.
func OneOf[T any, I api.Iterator[T, I]](first, last I, pred func(T) bool) bool {
	matches := 0
	for ; !first.Equal(last); first = first.Next() {
		if pred(first.Get()) {
			matches++
			if matches > 1 {
				return false
			}
		}
	}
	return matches == 1
}

// IsSorted reports whether no element is less than its predecessor.
func IsSorted[T any, I api.Iterator[T, I]](first, last I, less func(a, b T) bool) bool {
	if first.Equal(last) {
		return true
	}
	prev := first.Get()
	for it := first.Next(); !it.Equal(last); it = it.Next() {
		cur := it.Get()
		if less(cur, prev) {
			return false
		}
		prev = cur
	}
	return true
}

// IsPartitioned reports whether every element satisfying pred precedes
// every element that does not.
func IsPartitioned[T any, I api.Iterator[T, I]](first, last I, pred func(T) bool) bool {
	for !first.Equal(last) && pred(first.Get()) {
		first = first.Next()
	}
	for ; !first.Equal(last); first = first.Next() {
		if pred(first.Get()) {
			return false
		}
	}
	return true
}

// Find returns the first position holding v, or last.
func Find[T comparable, I api.Iterator[T, I]](first, last I, v T) I {
	for ; !first.Equal(last); first = first.Next() {
		if first.Get() == v {
			return first
		}
	}
	return last
}

// FindIf returns the first position satisfying pred, or last.
func FindIf[T any, I api.Iterator[T, I]](first, last I, pred func(T) bool) I {
	for ; !first.Equal(last); first = first.Next() {
		if pred(first.Get()) {
			return first
		}
	}
	return last
}

// FindNot returns the first position not holding v, or last.
func FindNot[T comparable, I api.Iterator[T, I]](first, last I, v T) I {
	for ; !first.Equal(last); first = first.Next() {
		if first.Get() != v {
			return first
		}
	}
	return last
}

// FindBackward returns the last position holding v, or last when v is absent.
func FindBackward[T comparable, I api.Iterator[T, I]](first, last I, v T) I {
	for it := last; !it.Equal(first); {
		it = it.Prev()
		if it.Get() == v {
			return it
		}
	}
	return last
}

// Equal reports whether [first1, last1) matches the range starting at first2
// element by element. The second range must be at least as long.
func Equal[T any, I1 api.Iterator[T, I1], I2 api.Iterator[T, I2]](first1, last1 I1, first2 I2, eq func(a, b T) bool) bool {
	for ; !first1.Equal(last1); first1, first2 = first1.Next(), first2.Next() {
		if !eq(first1.Get(), first2.Get()) {
			return false
		}
	}
	return true
}

// IsPalindrome reports whether the range reads the same in both directions.
func IsPalindrome[T any, I api.Iterator[T, I]](first, last I, eq func(a, b T) bool) bool {
	for !first.Equal(last) {
		last = last.Prev()
		if first.Equal(last) {
			break
		}
		if !eq(first.Get(), last.Get()) {
			return false
		}
		first = first.Next()
	}
	return true
}

// Count returns the number of elements satisfying pred.
func Count[T any, I api.Iterator[T, I]](first, last I, pred func(T) bool) int {
	n := 0
	for ; !first.Equal(last); first = first.Next() {
		if pred(first.Get()) {
			n++
		}
	}
	return n
}
