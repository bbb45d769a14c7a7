// File: ring/metrics.go
// Author: momentics <momentics@gmail.com>

package ring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ringMetrics holds Prometheus collectors for one ring.
// All methods are nil-safe so an unmetered ring pays a single branch.
type ringMetrics struct {
	reg prometheus.Registerer

	pushes    prometheus.Counter
	pops      prometheus.Counter
	overflows prometheus.Counter
	resizes   prometheus.Counter
	size      prometheus.Gauge
	capacity  prometheus.Gauge
}

func newRingMetrics(reg prometheus.Registerer, component string) (*ringMetrics, error) {
	labels := prometheus.Labels{"component": component}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "hioload",
			Subsystem:   "ring",
			Name:        name,
			ConstLabels: labels,
			Help:        help,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "hioload",
			Subsystem:   "ring",
			Name:        name,
			ConstLabels: labels,
			Help:        help,
		})
	}

	m := &ringMetrics{
		reg:       reg,
		pushes:    counter("pushes_total", "Total number of elements pushed at either end"),
		pops:      counter("pops_total", "Total number of elements popped from either end"),
		overflows: counter("overflows_total", "Total number of pushes that displaced an element"),
		resizes:   counter("resizes_total", "Total number of successful resizes"),
		size:      gauge("size", "Current number of live elements"),
		capacity:  gauge("capacity", "Current number of storage slots"),
	}

	registered := make([]prometheus.Collector, 0, 6)
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			for _, done := range registered {
				reg.Unregister(done)
			}
			return nil, err
		}
		registered = append(registered, c)
	}
	return m, nil
}

func (m *ringMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.pushes, m.pops, m.overflows, m.resizes, m.size, m.capacity}
}

func (m *ringMetrics) unregister() {
	if m == nil {
		return
	}
	for _, c := range m.collectors() {
		m.reg.Unregister(c)
	}
}

func (m *ringMetrics) recordPush(size int) {
	if m == nil {
		return
	}
	m.pushes.Inc()
	m.size.Set(float64(size))
}

func (m *ringMetrics) recordOverflow() {
	if m == nil {
		return
	}
	m.overflows.Inc()
}

func (m *ringMetrics) recordPop(size int) {
	if m == nil {
		return
	}
	m.pops.Inc()
	m.size.Set(float64(size))
}

func (m *ringMetrics) recordResize() {
	if m == nil {
		return
	}
	m.resizes.Inc()
}

func (m *ringMetrics) setShape(size, capacity int) {
	if m == nil {
		return
	}
	m.size.Set(float64(size))
	m.capacity.Set(float64(capacity))
}
