// Package algo
// Author: momentics <momentics@gmail.com>
//
// Generic algorithms over half-open iterator ranges [first, last).
// Any type satisfying api.Iterator works, including ring iterators and
// their ring.Reverse adapters. Predicates only read; Sort, Rotate, Reverse,
// Partition and IterSwap need an api.MutableIterator and work in place.
//
// Where a function's parameters do not mention the element type, pass it
// explicitly: algo.Reverse[int](r.Begin(), r.End()).
package algo
