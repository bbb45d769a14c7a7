// Package api
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity double-ended ring contract and its iterator contracts.

package api

// Deque is a fixed-capacity double-ended ring. A push on a full ring
// displaces the element at the opposite end.
type Deque[T any] interface {
	// PushBack appends v, evicting the front when full.
	PushBack(v T) error
	// PushFront prepends v, evicting the back when full.
	PushFront(v T) error
	// PopBack removes and returns the back element. Panics when empty.
	PopBack() T
	// PopFront removes and returns the front element. Panics when empty.
	PopFront() T
	// At returns the element at logical index i.
	At(i int) T
	// Len returns current number of items.
	Len() int
	// Cap returns buffer capacity.
	Cap() int
}

// Iterator is a random-access position over a sequence of T. I is the
// concrete iterator type so arithmetic stays allocation-free.
type Iterator[T any, I any] interface {
	// Get dereferences the iterator.
	Get() T
	// Next returns the iterator one position forward.
	Next() I
	// Prev returns the iterator one position back.
	Prev() I
	// Add returns the iterator moved by n positions (n may be negative).
	Add(n int) I
	// Diff returns the signed distance from other to this iterator.
	Diff(other I) int
	// Equal reports whether both iterators denote the same position.
	Equal(other I) bool
	// Less orders iterators by position.
	Less(other I) bool
}

// MutableIterator is an Iterator that can store through its position.
type MutableIterator[T any, I any] interface {
	Iterator[T, I]
	// Set stores v at the iterator position.
	Set(v T)
}
