// File: ring/reverse.go
// Author: momentics <momentics@gmail.com>

package ring

import "github.com/momentics/hioload-ring/api"

// Reverse adapts any random-access iterator to walk backwards.
// Reverse{base} dereferences base.Prev(), so Reverse(End) denotes the back
// element and Reverse(Begin) is the reverse end.
type Reverse[T any, I api.Iterator[T, I]] struct {
	base I
}

// MakeReverse wraps base.
func MakeReverse[T any, I api.Iterator[T, I]](base I) Reverse[T, I] {
	return Reverse[T, I]{base: base}
}

// Base returns the wrapped iterator.
func (r Reverse[T, I]) Base() I { return r.base }

func (r Reverse[T, I]) Get() T                         { return r.base.Prev().Get() }
func (r Reverse[T, I]) Next() Reverse[T, I]            { return Reverse[T, I]{r.base.Prev()} }
func (r Reverse[T, I]) Prev() Reverse[T, I]            { return Reverse[T, I]{r.base.Next()} }
func (r Reverse[T, I]) Add(n int) Reverse[T, I]        { return Reverse[T, I]{r.base.Add(-n)} }
func (r Reverse[T, I]) Sub(n int) Reverse[T, I]        { return Reverse[T, I]{r.base.Add(n)} }
func (r Reverse[T, I]) Diff(other Reverse[T, I]) int   { return other.base.Diff(r.base) }
func (r Reverse[T, I]) Equal(other Reverse[T, I]) bool { return r.base.Equal(other.base) }
func (r Reverse[T, I]) Less(other Reverse[T, I]) bool  { return other.base.Less(r.base) }

// Set stores through the wrapped iterator. Panics when the wrapped iterator is read-only.
func (r Reverse[T, I]) Set(v T) {
	s, ok := any(r.base.Prev()).(interface{ Set(T) })
	if !ok {
		panic("ring: Set through reverse of a read-only iterator")
	}
	s.Set(v)
}
