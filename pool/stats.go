// File: pool/stats.go
// Author: momentics <momentics@gmail.com>

package pool

// Stats aggregates block allocation/reuse counters.
type Stats struct {
	TotalAlloc int64 // blocks handed out by Allocate
	TotalFree  int64 // blocks returned through Deallocate
	Reused     int64 // allocations served from a free list
	InUse      int64 // blocks currently owned by callers
	Cached     int64 // blocks parked on free lists
}

// ReuseRatio returns the fraction of allocations served from cache.
func (s Stats) ReuseRatio() float64 {
	if s.TotalAlloc == 0 {
		return 0
	}
	return float64(s.Reused) / float64(s.TotalAlloc)
}
