// File: api/allocator.go
// Author: momentics <momentics@gmail.com>
//
// Allocator contract for containers that own a contiguous block of slots.

package api

// Allocator acquires and releases storage blocks and constructs/destroys
// elements in place. A container depends on no other allocator behavior.
type Allocator[T any] interface {
	// Allocate returns a block of exactly n zeroed slots.
	Allocate(n int) ([]T, error)

	// Deallocate returns a block obtained from Allocate.
	// The block must not be used afterwards.
	Deallocate(block []T)

	// Construct places v into slot. On error the slot holds no live value.
	// slot is either a storage slot of a block from Allocate or a
	// temporary used to validate v before an element is displaced.
	Construct(slot *T, v T) error

	// Destroy ends the lifetime of the value in slot and zeroes it.
	Destroy(slot *T)

	// Equal reports whether blocks from other may be released through this allocator.
	Equal(other Allocator[T]) bool
}

// CopySelector is implemented by allocators that choose the allocator a
// copied container receives.
type CopySelector[T any] interface {
	SelectOnCopy() Allocator[T]
}

// SwapPropagator is implemented by allocators that travel with their
// storage when two containers are swapped.
type SwapPropagator interface {
	PropagateOnSwap() bool
}

// SelectOnCopy applies the copy hook of a, falling back to a itself.
func SelectOnCopy[T any](a Allocator[T]) Allocator[T] {
	if cs, ok := a.(CopySelector[T]); ok {
		if sel := cs.SelectOnCopy(); sel != nil {
			return sel
		}
	}
	return a
}

// PropagatesOnSwap reports whether a asks to be swapped along with storage.
func PropagatesOnSwap[T any](a Allocator[T]) bool {
	sp, ok := a.(SwapPropagator)
	return ok && sp.PropagateOnSwap()
}
