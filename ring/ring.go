// File: ring/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity double-ended ring over an allocator-owned block.
// Not safe for concurrent use; see Locked for an externally synchronized wrapper.

package ring

import (
	"fmt"
	"iter"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/momentics/hioload-ring/api"
)

// DefaultCapacity is used when New is called with a capacity of 0.
const DefaultCapacity = 16

// Ensure compile-time compliance.
var (
	_ api.Deque[any] = (*Ring[any])(nil)
	_ api.Debug      = (*Ring[any])(nil)
)

// Ring is a fixed-capacity circular buffer usable as a double-ended queue.
//
// Live elements occupy physical slots (start+k) mod Cap() for 0 <= k < Len().
// Slots outside that window hold the zero value. A push on a full ring
// displaces the element at the opposite end, so the ring keeps a sliding
// window of the latest Cap() pushes.
type Ring[T any] struct {
	alloc api.Allocator[T]
	data  []T
	start int
	size  int

	logger  *zap.Logger
	metrics *ringMetrics
	onEvict func(T)
}

// New allocates a ring with the given capacity. A capacity of 0 selects
// DefaultCapacity; a negative capacity is an invalid argument.
func New[T any](capacity int, opts ...Option[T]) (*Ring[T], error) {
	if capacity < 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "ring: negative capacity").
			WithContext("requested", capacity)
	}
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	return newRing(capacity, applyOptions(opts...))
}

// From builds a full ring whose capacity is len(values) and whose front is values[0].
func From[T any](values []T, opts ...Option[T]) (*Ring[T], error) {
	if len(values) == 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "ring: empty initializer")
	}
	r, err := newRing(len(values), applyOptions(opts...))
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if err := r.PushBack(v); err != nil {
			r.Release()
			return nil, err
		}
	}
	return r, nil
}

func newRing[T any](capacity int, o *options[T]) (*Ring[T], error) {
	r := &Ring[T]{
		alloc:   o.alloc,
		logger:  o.logger.Named("ring"),
		onEvict: o.onEvict,
	}
	if o.registerer != nil {
		m, err := newRingMetrics(o.registerer, o.component)
		if err != nil {
			return nil, errors.Wrap(err, "ring: register metrics")
		}
		r.metrics = m
	}

	data, err := r.alloc.Allocate(capacity)
	if err != nil {
		r.metrics.unregister()
		return nil, r.allocFailed(err, capacity)
	}
	r.data = data
	r.metrics.setShape(0, capacity)
	return r, nil
}

// Len returns the number of live elements.
func (r *Ring[T]) Len() int { return r.size }

// Cap returns the number of storage slots.
func (r *Ring[T]) Cap() int { return len(r.data) }

// Empty reports whether the ring holds no elements.
func (r *Ring[T]) Empty() bool { return r.size == 0 }

// Full reports whether the next push will displace an element.
func (r *Ring[T]) Full() bool { return r.size == len(r.data) && len(r.data) > 0 }

// Data exposes the raw storage block in physical order.
// Element order must not be inferred from it.
func (r *Ring[T]) Data() []T { return r.data }

// Allocator returns the allocator owning the storage block.
func (r *Ring[T]) Allocator() api.Allocator[T] { return r.alloc }

// phys maps logical index i to its physical slot. Requires Cap() > 0.
func (r *Ring[T]) phys(i int) int {
	return (r.start + i) % len(r.data)
}

func (r *Ring[T]) checkIndex(op string, i int) {
	if i < 0 || i >= r.size {
		panic(fmt.Sprintf("ring: %s index %d out of range [0,%d)", op, i, r.size))
	}
}

func (r *Ring[T]) checkNotEmpty(op string) {
	if r.size == 0 {
		panic("ring: " + op + " on empty ring")
	}
}

// PushBack appends v. On a full ring the front element is destroyed and
// v takes its slot, so the front advances by one.
func (r *Ring[T]) PushBack(v T) error {
	c := len(r.data)
	if c == 0 {
		return api.NewError(api.ErrCodeNoCapacity, "ring: PushBack on zero-capacity ring")
	}
	end := (r.start + r.size) % c

	if r.size < c {
		if err := r.alloc.Construct(&r.data[end], v); err != nil {
			return errors.Wrap(err, "ring: construct element")
		}
		r.size++
		r.metrics.recordPush(r.size)
		return nil
	}

	// Full: end == start, the slot holds the current front.
	evicted, displaced, err := r.overwrite(end, v)
	if displaced {
		r.start = (r.start + 1) % c
	}
	if err != nil {
		if displaced {
			r.size--
			r.metrics.setShape(r.size, c)
			r.evict(evicted)
		}
		return err
	}
	r.metrics.recordOverflow()
	r.metrics.recordPush(r.size)
	r.evict(evicted)
	return nil
}

// PushFront prepends v. On a full ring the back element is destroyed and
// v takes its slot, so the front retreats by one.
func (r *Ring[T]) PushFront(v T) error {
	c := len(r.data)
	if c == 0 {
		return api.NewError(api.ErrCodeNoCapacity, "ring: PushFront on zero-capacity ring")
	}
	prev := (r.start - 1 + c) % c

	if r.size < c {
		if err := r.alloc.Construct(&r.data[prev], v); err != nil {
			return errors.Wrap(err, "ring: construct element")
		}
		r.start = prev
		r.size++
		r.metrics.recordPush(r.size)
		return nil
	}

	// Full: prev is the slot of the current back.
	evicted, displaced, err := r.overwrite(prev, v)
	if err != nil {
		if displaced {
			r.size--
			r.metrics.setShape(r.size, c)
			r.evict(evicted)
		}
		return err
	}
	r.start = prev
	r.metrics.recordOverflow()
	r.metrics.recordPush(r.size)
	r.evict(evicted)
	return nil
}

// overwrite replaces the live element in slot i with v. v is first built
// in a temporary, so a rejected value leaves the slot untouched. Once the
// temporary is accepted the old element is destroyed (displaced is true) and
// v is constructed in storage; if that second construction fails the slot
// is left empty and the caller must drop it from the live window.
func (r *Ring[T]) overwrite(i int, v T) (evicted T, displaced bool, err error) {
	var fresh T
	if err := r.alloc.Construct(&fresh, v); err != nil {
		return evicted, false, errors.Wrap(err, "ring: construct element")
	}
	evicted = r.data[i]
	r.alloc.Destroy(&r.data[i])
	if err := r.alloc.Construct(&r.data[i], fresh); err != nil {
		return evicted, true, errors.Wrap(err, "ring: construct element")
	}
	return evicted, true, nil
}

// EmplaceBack builds a new element with init and pushes it at the back.
// Nothing changes when init fails.
func (r *Ring[T]) EmplaceBack(init func(*T) error) error {
	var v T
	if err := init(&v); err != nil {
		return errors.Wrap(err, "ring: emplace")
	}
	return r.PushBack(v)
}

// EmplaceFront builds a new element with init and pushes it at the front.
func (r *Ring[T]) EmplaceFront(init func(*T) error) error {
	var v T
	if err := init(&v); err != nil {
		return errors.Wrap(err, "ring: emplace")
	}
	return r.PushFront(v)
}

// PopBack removes and returns the back element. Panics when empty.
func (r *Ring[T]) PopBack() T {
	r.checkNotEmpty("PopBack")
	i := r.phys(r.size - 1)
	v := r.data[i]
	r.alloc.Destroy(&r.data[i])
	r.size--
	r.metrics.recordPop(r.size)
	return v
}

// PopFront removes and returns the front element. Panics when empty.
func (r *Ring[T]) PopFront() T {
	r.checkNotEmpty("PopFront")
	v := r.data[r.start]
	r.alloc.Destroy(&r.data[r.start])
	r.start = (r.start + 1) % len(r.data)
	r.size--
	r.metrics.recordPop(r.size)
	return v
}

// TryPopBack is PopBack reporting false instead of panicking on an empty ring.
func (r *Ring[T]) TryPopBack() (T, bool) {
	if r.size == 0 {
		var zero T
		return zero, false
	}
	return r.PopBack(), true
}

// TryPopFront is PopFront reporting false instead of panicking on an empty ring.
func (r *Ring[T]) TryPopFront() (T, bool) {
	if r.size == 0 {
		var zero T
		return zero, false
	}
	return r.PopFront(), true
}

// At returns the element at logical index i.
func (r *Ring[T]) At(i int) T {
	r.checkIndex("At", i)
	return r.data[r.phys(i)]
}

// Ptr returns a pointer to the element at logical index i.
// The pointer is valid until the next mutation of r.
func (r *Ring[T]) Ptr(i int) *T {
	r.checkIndex("Ptr", i)
	return &r.data[r.phys(i)]
}

// Set replaces the element at logical index i.
func (r *Ring[T]) Set(i int, v T) {
	r.checkIndex("Set", i)
	r.data[r.phys(i)] = v
}

// Front returns the front element. Panics when empty.
func (r *Ring[T]) Front() T {
	r.checkNotEmpty("Front")
	return r.data[r.start]
}

// Back returns the back element. Panics when empty.
func (r *Ring[T]) Back() T {
	r.checkNotEmpty("Back")
	return r.data[r.phys(r.size-1)]
}

// FrontPtr returns a pointer to the front element, valid until the next mutation.
func (r *Ring[T]) FrontPtr() *T {
	r.checkNotEmpty("FrontPtr")
	return &r.data[r.start]
}

// BackPtr returns a pointer to the back element, valid until the next mutation.
func (r *Ring[T]) BackPtr() *T {
	r.checkNotEmpty("BackPtr")
	return &r.data[r.phys(r.size-1)]
}

// Clear destroys all live elements. Capacity is kept.
func (r *Ring[T]) Clear() {
	r.destroyLive()
	r.start, r.size = 0, 0
	r.metrics.setShape(0, len(r.data))
}

// Release destroys all live elements, returns storage to the allocator and
// unregisters the ring's metrics. The ring is left with capacity 0; Resize
// makes it usable again, without metrics.
func (r *Ring[T]) Release() {
	r.releaseStorage()
	r.metrics.unregister()
	r.metrics = nil
}

func (r *Ring[T]) releaseStorage() {
	if r.data == nil {
		return
	}
	r.destroyLive()
	r.alloc.Deallocate(r.data)
	r.data = nil
	r.start, r.size = 0, 0
	r.metrics.setShape(0, 0)
}

func (r *Ring[T]) destroyLive() {
	for k := 0; k < r.size; k++ {
		r.alloc.Destroy(&r.data[r.phys(k)])
	}
}

// Resize moves the live elements into a fresh block of n slots, front first.
// It fails with api.ErrInvalidArgument when n < Len() or n < 1, leaving the
// ring unchanged. Outstanding iterators are invalidated.
func (r *Ring[T]) Resize(n int) error {
	if n < 1 || n < r.size {
		return api.NewError(api.ErrCodeInvalidArgument, "ring: resize below current size").
			WithContext("requested", n).
			WithContext("size", r.size)
	}

	block, err := r.relocate(r.alloc, n)
	if err != nil {
		return err
	}

	old := r.data
	r.destroyLive()
	if old != nil {
		r.alloc.Deallocate(old)
	}
	r.data = block
	r.start = 0

	r.logger.Debug("ring resized",
		zap.Int("from", len(old)),
		zap.Int("to", n),
		zap.Int("size", r.size))
	r.metrics.recordResize()
	r.metrics.setShape(r.size, n)
	return nil
}

// relocate copies the live window, in logical order, into slots 0..Len()-1
// of a fresh block of n slots obtained from a. On failure every slot it
// constructed is destroyed and the block is returned to a.
func (r *Ring[T]) relocate(a api.Allocator[T], n int) ([]T, error) {
	block, err := a.Allocate(n)
	if err != nil {
		return nil, r.allocFailed(err, n)
	}
	for k := 0; k < r.size; k++ {
		if err := a.Construct(&block[k], r.data[r.phys(k)]); err != nil {
			for j := 0; j < k; j++ {
				a.Destroy(&block[j])
			}
			a.Deallocate(block)
			return nil, errors.Wrapf(err, "ring: construct element %d", k)
		}
	}
	return block, nil
}

func (r *Ring[T]) allocFailed(err error, n int) error {
	r.logger.Warn("ring storage allocation failed", zap.Int("slots", n), zap.Error(err))
	return errors.Wrap(err, "ring: allocate storage")
}

func (r *Ring[T]) evict(v T) {
	if r.onEvict != nil {
		r.onEvict(v)
	}
}

// Clone returns a copy of r. Its allocator is chosen by the copy hook of
// r's allocator (api.CopySelector), falling back to the same allocator.
// The copy has the same capacity and its front sits at slot 0.
// Metrics registration is not copied.
func (r *Ring[T]) Clone() (*Ring[T], error) {
	return r.cloneWith(api.SelectOnCopy(r.alloc))
}

// CloneWithAllocator is Clone using a verbatim.
func (r *Ring[T]) CloneWithAllocator(a api.Allocator[T]) (*Ring[T], error) {
	if a == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "ring: nil allocator")
	}
	return r.cloneWith(a)
}

func (r *Ring[T]) cloneWith(a api.Allocator[T]) (*Ring[T], error) {
	block, err := r.relocate(a, len(r.data))
	if err != nil {
		return nil, err
	}
	return &Ring[T]{
		alloc:   a,
		data:    block,
		size:    r.size,
		logger:  r.logger,
		onEvict: r.onEvict,
	}, nil
}

// Move transfers r's storage and cursors to a new ring and leaves r empty
// with capacity 0.
func (r *Ring[T]) Move() *Ring[T] {
	dst := *r
	r.data, r.start, r.size = nil, 0, 0
	r.metrics = nil
	return &dst
}

// MoveWithAllocator moves r into a ring owned by a. When a equals r's
// allocator the block is transferred; otherwise elements are moved one by one
// into a block from a and r's block is released through r's allocator.
// On error r is unchanged.
func (r *Ring[T]) MoveWithAllocator(a api.Allocator[T]) (*Ring[T], error) {
	if a == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "ring: nil allocator")
	}
	if a.Equal(r.alloc) {
		dst := r.Move()
		dst.alloc = a
		return dst, nil
	}

	block, err := r.relocate(a, len(r.data))
	if err != nil {
		return nil, err
	}
	dst := &Ring[T]{
		alloc:   a,
		data:    block,
		size:    r.size,
		logger:  r.logger,
		metrics: r.metrics,
		onEvict: r.onEvict,
	}
	r.metrics = nil
	r.releaseStorage()
	return dst, nil
}

// Assign replaces r's contents with a copy of src (copy-and-swap).
// The copy is built with r's allocator; on error r is unchanged.
func (r *Ring[T]) Assign(src *Ring[T]) error {
	if src == r {
		return nil
	}
	tmp, err := src.cloneWith(r.alloc)
	if err != nil {
		return err
	}
	r.data, tmp.data = tmp.data, r.data
	r.start, tmp.start = tmp.start, r.start
	r.size, tmp.size = tmp.size, r.size
	tmp.Release()
	r.metrics.setShape(r.size, len(r.data))
	return nil
}

// MoveAssign releases r's contents and takes over src's storage, cursors and
// allocator. src is left empty with capacity 0.
func (r *Ring[T]) MoveAssign(src *Ring[T]) {
	if src == r {
		return
	}
	r.releaseStorage()
	r.alloc = src.alloc
	r.data, r.start, r.size = src.data, src.start, src.size
	src.data, src.start, src.size = nil, 0, 0
	src.metrics.setShape(0, 0)
	r.metrics.setShape(r.size, len(r.data))
}

// Swap exchanges the contents of r and other in constant time.
// Allocators are exchanged when either of them propagates on swap, so each
// block stays with the allocator that owns it. Swapping rings whose
// allocators are unequal and do not propagate panics.
func (r *Ring[T]) Swap(other *Ring[T]) {
	if other == r {
		return
	}
	if api.PropagatesOnSwap(r.alloc) || api.PropagatesOnSwap(other.alloc) {
		r.alloc, other.alloc = other.alloc, r.alloc
	} else if !r.alloc.Equal(other.alloc) {
		panic("ring: Swap with unequal allocators that do not propagate")
	}
	r.data, other.data = other.data, r.data
	r.start, other.start = other.start, r.start
	r.size, other.size = other.size, r.size
	r.metrics.setShape(r.size, len(r.data))
	other.metrics.setShape(other.size, len(other.data))
}

// Values yields live elements front to back.
func (r *Ring[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for k := 0; k < r.size; k++ {
			if !yield(r.data[r.phys(k)]) {
				return
			}
		}
	}
}

// All yields logical index and element, front to back.
func (r *Ring[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for k := 0; k < r.size; k++ {
			if !yield(k, r.data[r.phys(k)]) {
				return
			}
		}
	}
}

// Backward yields logical index and element, back to front.
func (r *Ring[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for k := r.size - 1; k >= 0; k-- {
			if !yield(k, r.data[r.phys(k)]) {
				return
			}
		}
	}
}

// Slice copies the live elements into a new slice in logical order.
func (r *Ring[T]) Slice() []T {
	out := make([]T, 0, r.size)
	for v := range r.Values() {
		out = append(out, v)
	}
	return out
}

// DumpState returns cursors and a copy of the raw storage for diagnostics.
func (r *Ring[T]) DumpState() map[string]any {
	end := 0
	if len(r.data) > 0 {
		end = (r.start + r.size) % len(r.data)
	}
	raw := make([]T, len(r.data))
	copy(raw, r.data)
	return map[string]any{
		"capacity": len(r.data),
		"size":     r.size,
		"start":    r.start,
		"end":      end,
		"data":     raw,
	}
}
