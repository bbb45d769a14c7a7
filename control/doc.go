// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration and debug introspection layer for hioload-ring.
//
// Provides:
//   - Config: YAML-backed ring settings with defaults and validation
//   - NewAllocator / NewRing: build allocators and rings from a Config
//   - DebugProbes: named probe registry for state export
//   - SlabCollector: Prometheus view of slab allocator counters
package control
