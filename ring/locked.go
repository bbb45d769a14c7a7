// File: ring/locked.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Locked wraps a Ring with a reader/writer lock for callers that share one
// ring across goroutines. The lock is padded onto its own cache line.

package ring

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// Locked serializes access to a Ring. Iterators are not exposed because
// they would outlive the lock; use View or Do instead.
type Locked[T any] struct {
	_  cpu.CacheLinePad
	mu sync.RWMutex
	_  cpu.CacheLinePad
	r  *Ring[T]
}

// NewLocked takes ownership of r.
func NewLocked[T any](r *Ring[T]) *Locked[T] {
	return &Locked[T]{r: r}
}

// PushBack appends v under the write lock.
func (l *Locked[T]) PushBack(v T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.PushBack(v)
}

// PushFront prepends v under the write lock.
func (l *Locked[T]) PushFront(v T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.PushFront(v)
}

// PopBack removes the back element; ok is false when the ring is empty.
func (l *Locked[T]) PopBack() (v T, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.TryPopBack()
}

// PopFront removes the front element; ok is false when the ring is empty.
func (l *Locked[T]) PopFront() (v T, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.TryPopFront()
}

// Len returns the number of live elements.
func (l *Locked[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.r.Len()
}

// Cap returns the number of storage slots.
func (l *Locked[T]) Cap() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.r.Cap()
}

// Resize changes capacity under the write lock.
func (l *Locked[T]) Resize(n int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Resize(n)
}

// Snapshot copies the live elements front to back.
func (l *Locked[T]) Snapshot() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.r.Slice()
}

// View runs fn with shared access. fn must not mutate the ring.
func (l *Locked[T]) View(fn func(*Ring[T])) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.r)
}

// Do runs fn with exclusive access.
func (l *Locked[T]) Do(fn func(*Ring[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.r)
}

// Release frees the underlying ring.
func (l *Locked[T]) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Release()
}
