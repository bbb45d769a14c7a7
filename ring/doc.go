// Package ring
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity circular buffer with double-ended access, random-access
// iterators and pluggable storage allocators.
//
// A Ring never grows on its own. PushBack on a full ring displaces the front,
// PushFront on a full ring displaces the back, so the ring always holds the
// latest Cap() pushes:
//
//	r, _ := ring.New[int](3)
//	for i := 1; i <= 4; i++ {
//		_ = r.PushBack(i)
//	}
//	// r holds 2, 3, 4
//
// Iterators (Begin/End, CBegin/CEnd, RBegin/REnd, CRBegin/CREnd) address
// elements by logical index and satisfy api.Iterator, so the algo package
// can sort, rotate and search a ring in place. An iterator snapshots the
// ring state it was created from; any push, pop, resize, swap or release
// invalidates it.
//
// Storage comes from an api.Allocator (pool.HeapAllocator by default).
// Copy, move, swap and assignment follow the allocator's copy and swap
// hooks. Optional zap logging and Prometheus metrics are enabled through
// WithLogger and WithMetrics.
//
// Ring is not safe for concurrent use. Locked adds a reader/writer lock.
package ring
