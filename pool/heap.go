// File: pool/heap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"github.com/momentics/hioload-ring/api"
)

// HeapAllocator allocates every block with make and never caches.
// All HeapAllocator values of one element type are interchangeable.
type HeapAllocator[T any] struct{}

// Ensure compile-time compliance.
var (
	_ api.Allocator[any] = HeapAllocator[any]{}
	_ api.SwapPropagator = HeapAllocator[any]{}
)

// Allocate returns n zeroed slots.
func (HeapAllocator[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "pool: negative block size").
			WithContext("requested", n)
	}
	return make([]T, n), nil
}

// Deallocate drops references held by the block; the GC does the rest.
func (HeapAllocator[T]) Deallocate(block []T) {
	clear(block)
}

// Construct stores v into slot.
func (HeapAllocator[T]) Construct(slot *T, v T) error {
	*slot = v
	return nil
}

// Destroy zeroes slot.
func (HeapAllocator[T]) Destroy(slot *T) {
	var zero T
	*slot = zero
}

// Equal reports whether other is a HeapAllocator as well.
func (HeapAllocator[T]) Equal(other api.Allocator[T]) bool {
	_, ok := other.(HeapAllocator[T])
	return ok
}

// PropagateOnSwap is true: heap storage can be released by any HeapAllocator.
func (HeapAllocator[T]) PropagateOnSwap() bool { return true }
