// File: algo/mutate.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// In-place algorithms over mutable random-access ranges.

package algo

import (
	"math/bits"

	"github.com/momentics/hioload-ring/api"
)

// insertionThreshold is the range length below which Sort switches to insertion sort.
const insertionThreshold = 12

// IterSwap exchanges the elements at a and b.
func IterSwap[T any, I api.MutableIterator[T, I]](a, b I) {
	va, vb := a.Get(), b.Get()
	a.Set(vb)
	b.Set(va)
}

// Reverse reverses the order of the elements in [first, last).
func Reverse[T any, I api.MutableIterator[T, I]](first, last I) {
	for !first.Equal(last) {
		last = last.Prev()
		if first.Equal(last) {
			return
		}
		IterSwap[T](first, last)
		first = first.Next()
	}
}

// Rotate moves [middle, last) in front of [first, middle) and returns the
// new position of the element that was at first.
func Rotate[T any, I api.MutableIterator[T, I]](first, middle, last I) I {
	if first.Equal(middle) {
		return last
	}
	if middle.Equal(last) {
		return first
	}
	Reverse[T](first, middle)
	Reverse[T](middle, last)
	Reverse[T](first, last)
	return first.Add(last.Diff(middle))
}

// Partition reorders the range so that elements satisfying pred come first
// and returns the first position of the second group. Not stable.
func Partition[T any, I api.MutableIterator[T, I]](first, last I, pred func(T) bool) I {
	out := first
	for it := first; !it.Equal(last); it = it.Next() {
		if pred(it.Get()) {
			if !out.Equal(it) {
				IterSwap[T](out, it)
			}
			out = out.Next()
		}
	}
	return out
}

// Sort orders [first, last) ascending by less. Not stable.
// Introsort: quicksort with median-of-three pivots, heapsort once the
// recursion budget is spent, insertion sort for short ranges.
func Sort[T any, I api.MutableIterator[T, I]](first, last I, less func(a, b T) bool) {
	n := last.Diff(first)
	if n < 2 {
		return
	}
	s := sorter[T, I]{base: first, less: less}
	s.quick(0, n, 2*bits.Len(uint(n)))
}

// sorter addresses the range by offset from base.
type sorter[T any, I api.MutableIterator[T, I]] struct {
	base I
	less func(a, b T) bool
}

func (s sorter[T, I]) get(i int) T          { return s.base.Add(i).Get() }
func (s sorter[T, I]) set(i int, v T)       { s.base.Add(i).Set(v) }
func (s sorter[T, I]) lessAt(i, j int) bool { return s.less(s.get(i), s.get(j)) }

func (s sorter[T, I]) swap(i, j int) {
	vi, vj := s.get(i), s.get(j)
	s.set(i, vj)
	s.set(j, vi)
}

func (s sorter[T, I]) quick(lo, hi, depth int) {
	for hi-lo > insertionThreshold {
		if depth == 0 {
			s.heap(lo, hi)
			return
		}
		depth--
		p := s.partition(lo, hi)
		if p-lo < hi-p {
			s.quick(lo, p, depth)
			lo = p + 1
		} else {
			s.quick(p+1, hi, depth)
			hi = p
		}
	}
	s.insertion(lo, hi)
}

// partition places a median-of-three pivot at its final offset and returns it.
func (s sorter[T, I]) partition(lo, hi int) int {
	mid := lo + (hi-lo)/2
	last := hi - 1
	if s.lessAt(mid, lo) {
		s.swap(mid, lo)
	}
	if s.lessAt(last, lo) {
		s.swap(last, lo)
	}
	if s.lessAt(last, mid) {
		s.swap(last, mid)
	}
	s.swap(mid, last)
	pivot := s.get(last)

	i := lo
	for j := lo; j < last; j++ {
		if s.less(s.get(j), pivot) {
			if i != j {
				s.swap(i, j)
			}
			i++
		}
	}
	s.swap(i, last)
	return i
}

func (s sorter[T, I]) insertion(lo, hi int) {
	for i := lo + 1; i < hi; i++ {
		for j := i; j > lo && s.lessAt(j, j-1); j-- {
			s.swap(j, j-1)
		}
	}
}

func (s sorter[T, I]) heap(lo, hi int) {
	n := hi - lo
	for i := n/2 - 1; i >= 0; i-- {
		s.siftDown(lo, i, n)
	}
	for i := n - 1; i > 0; i-- {
		s.swap(lo, lo+i)
		s.siftDown(lo, 0, i)
	}
}

func (s sorter[T, I]) siftDown(lo, root, n int) {
	for {
		child := 2*root + 1
		if child >= n {
			return
		}
		if child+1 < n && s.lessAt(lo+child, lo+child+1) {
			child++
		}
		if !s.lessAt(lo+root, lo+child) {
			return
		}
		s.swap(lo+root, lo+child)
		root = child
	}
}
