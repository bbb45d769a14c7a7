// File: pool/slab_pool.go
// Package pool implements slab allocation of ring storage blocks with per-size free lists.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-ring/api"
)

const (
	defaultMaxCached = 64
)

// Hooks observe element lifecycle inside slabs.
// OnConstruct may veto a construction by returning an error. A ring
// overwriting a full slot first constructs the value in a temporary and,
// once accepted, constructs it again in the storage slot.
type Hooks[T any] struct {
	OnConstruct func(slot *T, v T) error
	OnDestroy   func(slot *T)
}

// SlabOption configures a SlabAllocator.
type SlabOption[T any] func(*SlabAllocator[T])

// WithMaxCached bounds the free list kept for each block size.
func WithMaxCached[T any](n int) SlabOption[T] {
	return func(s *SlabAllocator[T]) {
		if n >= 0 {
			s.maxCached = n
		}
	}
}

// WithMaxBlocks caps the number of blocks outstanding at once; 0 means unlimited.
func WithMaxBlocks[T any](n int) SlabOption[T] {
	return func(s *SlabAllocator[T]) {
		if n >= 0 {
			s.maxBlocks = n
		}
	}
}

// WithHooks installs element lifecycle hooks.
func WithHooks[T any](h Hooks[T]) SlabOption[T] {
	return func(s *SlabAllocator[T]) {
		s.hooks = h
	}
}

// SlabAllocator recycles storage blocks by size class (the exact slot count).
// It is safe for concurrent use so several rings may share one instance.
type SlabAllocator[T any] struct {
	mu        sync.Mutex
	free      map[int]*queue.Queue // size class -> released []T blocks
	maxCached int
	maxBlocks int
	hooks     Hooks[T]

	inUse      int
	totalAlloc atomic.Int64
	totalFree  atomic.Int64
	reused     atomic.Int64
}

// Ensure compile-time compliance.
var (
	_ api.Allocator[any]    = (*SlabAllocator[any])(nil)
	_ api.CopySelector[any] = (*SlabAllocator[any])(nil)
	_ api.SwapPropagator    = (*SlabAllocator[any])(nil)
)

// NewSlabAllocator creates an empty slab allocator.
func NewSlabAllocator[T any](opts ...SlabOption[T]) *SlabAllocator[T] {
	s := &SlabAllocator[T]{
		free:      make(map[int]*queue.Queue),
		maxCached: defaultMaxCached,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Allocate returns n zeroed slots, reusing a cached block of the same size if any.
func (s *SlabAllocator[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "pool: negative block size").
			WithContext("requested", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxBlocks > 0 && s.inUse >= s.maxBlocks {
		return nil, api.NewError(api.ErrCodeResourceExhausted, "pool: slab block limit reached").
			WithContext("limit", s.maxBlocks).
			WithContext("requested", n)
	}

	var block []T
	if q, ok := s.free[n]; ok && q.Length() > 0 {
		block = q.Remove().([]T)
		s.reused.Add(1)
	} else {
		block = make([]T, n)
	}
	s.inUse++
	s.totalAlloc.Add(1)
	return block, nil
}

// Deallocate zeroes the block and parks it on its free list if there is room.
func (s *SlabAllocator[T]) Deallocate(block []T) {
	if block == nil {
		return
	}
	clear(block)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inUse--
	s.totalFree.Add(1)

	n := len(block)
	q, ok := s.free[n]
	if !ok {
		q = queue.New()
		s.free[n] = q
	}
	if q.Length() < s.maxCached {
		q.Add(block)
	}
}

// Construct stores v into slot, consulting the OnConstruct hook first.
func (s *SlabAllocator[T]) Construct(slot *T, v T) error {
	if s.hooks.OnConstruct != nil {
		if err := s.hooks.OnConstruct(slot, v); err != nil {
			var zero T
			*slot = zero
			return err
		}
	}
	*slot = v
	return nil
}

// Destroy runs the OnDestroy hook and zeroes slot.
func (s *SlabAllocator[T]) Destroy(slot *T) {
	if s.hooks.OnDestroy != nil {
		s.hooks.OnDestroy(slot)
	}
	var zero T
	*slot = zero
}

// Equal is identity: only the owning slab may take its blocks back.
func (s *SlabAllocator[T]) Equal(other api.Allocator[T]) bool {
	o, ok := other.(*SlabAllocator[T])
	return ok && o == s
}

// SelectOnCopy keeps copies on the same slab.
func (s *SlabAllocator[T]) SelectOnCopy() api.Allocator[T] { return s }

// PropagateOnSwap is false: swapped storage stays accounted to its slab.
func (s *SlabAllocator[T]) PropagateOnSwap() bool { return false }

// Stats returns a snapshot of allocation counters.
func (s *SlabAllocator[T]) Stats() Stats {
	s.mu.Lock()
	inUse := s.inUse
	var cached int
	for _, q := range s.free {
		cached += q.Length()
	}
	s.mu.Unlock()

	return Stats{
		TotalAlloc: s.totalAlloc.Load(),
		TotalFree:  s.totalFree.Load(),
		Reused:     s.reused.Load(),
		InUse:      int64(inUse),
		Cached:     int64(cached),
	}
}

// Purge drops every cached block.
func (s *SlabAllocator[T]) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.free = make(map[int]*queue.Queue)
}
