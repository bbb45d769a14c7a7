// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus export of slab allocator counters.

package control

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-ring/pool"
)

// StatsSource is satisfied by pool.SlabAllocator of any element type.
type StatsSource interface {
	Stats() pool.Stats
}

// SlabCollector reads pool.Stats on every scrape.
type SlabCollector struct {
	src StatsSource

	allocs *prometheus.Desc
	frees  *prometheus.Desc
	reused *prometheus.Desc
	inUse  *prometheus.Desc
	cached *prometheus.Desc
}

// Ensure compile-time compliance.
var _ prometheus.Collector = (*SlabCollector)(nil)

// NewSlabCollector describes src under the given component label.
func NewSlabCollector(src StatsSource, component string) *SlabCollector {
	labels := prometheus.Labels{"component": component}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("hioload", "slab", name), help, nil, labels)
	}
	return &SlabCollector{
		src:    src,
		allocs: desc("allocations_total", "Blocks handed out by Allocate"),
		frees:  desc("deallocations_total", "Blocks returned through Deallocate"),
		reused: desc("reused_total", "Allocations served from a free list"),
		inUse:  desc("blocks_in_use", "Blocks currently owned by rings"),
		cached: desc("blocks_cached", "Blocks parked on free lists"),
	}
}

// Describe implements prometheus.Collector.
func (c *SlabCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.allocs
	ch <- c.frees
	ch <- c.reused
	ch <- c.inUse
	ch <- c.cached
}

// Collect implements prometheus.Collector.
func (c *SlabCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.allocs, prometheus.CounterValue, float64(s.TotalAlloc))
	ch <- prometheus.MustNewConstMetric(c.frees, prometheus.CounterValue, float64(s.TotalFree))
	ch <- prometheus.MustNewConstMetric(c.reused, prometheus.CounterValue, float64(s.Reused))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(s.InUse))
	ch <- prometheus.MustNewConstMetric(c.cached, prometheus.GaugeValue, float64(s.Cached))
}
