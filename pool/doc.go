// Package pool
// Author: momentics <momentics@gmail.com>
//
// Storage allocators for hioload-ring containers.
// HeapAllocator hands out fresh Go slices and lets the GC reclaim them.
// SlabAllocator keeps released blocks on per-size free lists and reuses them,
// trading memory for fewer allocations in ring-heavy pipelines.
// See heap.go and slab_pool.go for implementation details.
package pool
