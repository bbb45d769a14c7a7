// File: ring/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/pool"
)

// Option configures a Ring using the functional options pattern.
type Option[T any] func(*options[T])

// options holds construction-time configuration.
type options[T any] struct {
	alloc      api.Allocator[T]
	logger     *zap.Logger
	registerer prometheus.Registerer
	component  string
	onEvict    func(T)
}

// WithAllocator sets the storage allocator. Defaults to pool.HeapAllocator.
func WithAllocator[T any](a api.Allocator[T]) Option[T] {
	return func(o *options[T]) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithLogger sets the logger used for resize and allocation events.
func WithLogger[T any](l *zap.Logger) Option[T] {
	return func(o *options[T]) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics exports ring counters to reg under the given component label.
// Ignored when reg is nil or component is empty.
func WithMetrics[T any](reg prometheus.Registerer, component string) Option[T] {
	return func(o *options[T]) {
		if reg != nil && component != "" {
			o.registerer = reg
			o.component = component
		}
	}
}

// WithEvictCallback is called with every element displaced by an overflow push,
// after the ring has been updated.
func WithEvictCallback[T any](fn func(T)) Option[T] {
	return func(o *options[T]) {
		o.onEvict = fn
	}
}

func applyOptions[T any](opts ...Option[T]) *options[T] {
	o := &options[T]{
		alloc:  pool.HeapAllocator[T]{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
