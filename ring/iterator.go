// File: ring/iterator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Random-access iterators over a Ring. An iterator snapshots the ring's
// block and cursors when it is created and addresses elements by logical
// index; any push, pop, resize, swap or release invalidates it.

package ring

import "github.com/momentics/hioload-ring/api"

// Ensure compile-time compliance.
var (
	_ api.MutableIterator[int, Iterator[int]] = Iterator[int]{}
	_ api.Iterator[int, ConstIterator[int]]   = ConstIterator[int]{}
)

// cursor is the layout shared by Iterator and ConstIterator.
type cursor[T any] struct {
	data     []T
	capacity int
	start    int
	size     int
	index    int
}

func (r *Ring[T]) cursorAt(index int) cursor[T] {
	return cursor[T]{
		data:     r.data,
		capacity: len(r.data),
		start:    r.start,
		size:     r.size,
		index:    index,
	}
}

// slot resolves the physical slot. Negative indices, which generic
// algorithms produce by stepping before Begin, are normalized modulo size.
func (c cursor[T]) slot(offset int) int {
	i := c.index + offset
	if c.size == 0 {
		panic("ring: dereference of iterator over empty ring")
	}
	if i == c.size {
		panic("ring: dereference of end iterator")
	}
	logical := ((i % c.size) + c.size) % c.size
	return (c.start + logical) % c.capacity
}

func (c cursor[T]) moved(n int) cursor[T] {
	c.index += n
	return c
}

func (c cursor[T]) equal(o cursor[T]) bool {
	return sameBlock(c.data, o.data) && c.size == o.size && c.index == o.index
}

// sameBlock compares storage identity, not contents.
func sameBlock[T any](a, b []T) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	return &a[0] == &b[0]
}

// Iterator is a mutable random-access iterator.
type Iterator[T any] struct {
	c cursor[T]
}

// Begin returns an iterator to the front element.
func (r *Ring[T]) Begin() Iterator[T] { return Iterator[T]{r.cursorAt(0)} }

// End returns the past-the-back iterator. It must not be dereferenced.
func (r *Ring[T]) End() Iterator[T] { return Iterator[T]{r.cursorAt(r.size)} }

// Index returns the logical index the iterator denotes.
func (it Iterator[T]) Index() int { return it.c.index }

// Get returns the element at the iterator.
func (it Iterator[T]) Get() T { return it.c.data[it.c.slot(0)] }

// Set stores v at the iterator.
func (it Iterator[T]) Set(v T) { it.c.data[it.c.slot(0)] = v }

// Ptr returns a pointer to the element at the iterator.
func (it Iterator[T]) Ptr() *T { return &it.c.data[it.c.slot(0)] }

// At returns the element n positions away from the iterator.
func (it Iterator[T]) At(n int) T { return it.c.data[it.c.slot(n)] }

// Next returns the iterator one position forward.
func (it Iterator[T]) Next() Iterator[T] { return Iterator[T]{it.c.moved(1)} }

// Prev returns the iterator one position back.
func (it Iterator[T]) Prev() Iterator[T] { return Iterator[T]{it.c.moved(-1)} }

// Add returns the iterator moved by n.
func (it Iterator[T]) Add(n int) Iterator[T] { return Iterator[T]{it.c.moved(n)} }

// Sub returns the iterator moved by -n.
func (it Iterator[T]) Sub(n int) Iterator[T] { return Iterator[T]{it.c.moved(-n)} }

// Diff returns it - other.
func (it Iterator[T]) Diff(other Iterator[T]) int { return it.c.index - other.c.index }

// Equal reports whether both iterators address the same position of the same ring state.
func (it Iterator[T]) Equal(other Iterator[T]) bool { return it.c.equal(other.c) }

// Less reports whether it precedes other.
func (it Iterator[T]) Less(other Iterator[T]) bool { return it.c.index < other.c.index }

// LessEq reports whether it does not follow other.
func (it Iterator[T]) LessEq(other Iterator[T]) bool { return it.c.index <= other.c.index }

// Greater reports whether it follows other.
func (it Iterator[T]) Greater(other Iterator[T]) bool { return it.c.index > other.c.index }

// GreaterEq reports whether it does not precede other.
func (it Iterator[T]) GreaterEq(other Iterator[T]) bool { return it.c.index >= other.c.index }

// Const returns a read-only iterator at the same position.
func (it Iterator[T]) Const() ConstIterator[T] { return ConstIterator[T]{it.c} }

// ConstIterator is a read-only random-access iterator.
type ConstIterator[T any] struct {
	c cursor[T]
}

// CBegin returns a read-only iterator to the front element.
func (r *Ring[T]) CBegin() ConstIterator[T] { return ConstIterator[T]{r.cursorAt(0)} }

// CEnd returns the read-only past-the-back iterator.
func (r *Ring[T]) CEnd() ConstIterator[T] { return ConstIterator[T]{r.cursorAt(r.size)} }

// Index returns the logical index the iterator denotes.
func (it ConstIterator[T]) Index() int { return it.c.index }

// Get returns the element at the iterator.
func (it ConstIterator[T]) Get() T { return it.c.data[it.c.slot(0)] }

// At returns the element n positions away from the iterator.
func (it ConstIterator[T]) At(n int) T { return it.c.data[it.c.slot(n)] }

// Next returns the iterator one position forward.
func (it ConstIterator[T]) Next() ConstIterator[T] { return ConstIterator[T]{it.c.moved(1)} }

// Prev returns the iterator one position back.
func (it ConstIterator[T]) Prev() ConstIterator[T] { return ConstIterator[T]{it.c.moved(-1)} }

// Add returns the iterator moved by n.
func (it ConstIterator[T]) Add(n int) ConstIterator[T] { return ConstIterator[T]{it.c.moved(n)} }

// Sub returns the iterator moved by -n.
func (it ConstIterator[T]) Sub(n int) ConstIterator[T] { return ConstIterator[T]{it.c.moved(-n)} }

// Diff returns it - other.
func (it ConstIterator[T]) Diff(other ConstIterator[T]) int { return it.c.index - other.c.index }

// Equal reports whether both iterators address the same position of the same ring state.
func (it ConstIterator[T]) Equal(other ConstIterator[T]) bool { return it.c.equal(other.c) }

// Less reports whether it precedes other.
func (it ConstIterator[T]) Less(other ConstIterator[T]) bool { return it.c.index < other.c.index }

// LessEq reports whether it does not follow other.
func (it ConstIterator[T]) LessEq(other ConstIterator[T]) bool { return it.c.index <= other.c.index }

// Greater reports whether it follows other.
func (it ConstIterator[T]) Greater(other ConstIterator[T]) bool { return it.c.index > other.c.index }

// GreaterEq reports whether it does not precede other.
func (it ConstIterator[T]) GreaterEq(other ConstIterator[T]) bool { return it.c.index >= other.c.index }

// RBegin returns a reverse iterator to the back element.
func (r *Ring[T]) RBegin() Reverse[T, Iterator[T]] { return MakeReverse[T](r.End()) }

// REnd returns the reverse past-the-front iterator.
func (r *Ring[T]) REnd() Reverse[T, Iterator[T]] { return MakeReverse[T](r.Begin()) }

// CRBegin returns a read-only reverse iterator to the back element.
func (r *Ring[T]) CRBegin() Reverse[T, ConstIterator[T]] { return MakeReverse[T](r.CEnd()) }

// CREnd returns the read-only reverse past-the-front iterator.
func (r *Ring[T]) CREnd() Reverse[T, ConstIterator[T]] { return MakeReverse[T](r.CBegin()) }
