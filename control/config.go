// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Ring configuration: YAML loading, defaults, validation and factories.

package control

import (
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/pool"
	"github.com/momentics/hioload-ring/ring"
)

// Allocator kinds accepted in Config.Allocator.
const (
	AllocatorHeap = "heap"
	AllocatorSlab = "slab"
)

// Config describes how rings are built.
type Config struct {
	// Capacity of new rings; 0 selects ring.DefaultCapacity.
	Capacity  int           `yaml:"capacity"`
	Allocator string        `yaml:"allocator"`
	Slab      SlabConfig    `yaml:"slab"`
	Metrics   MetricsConfig `yaml:"metrics"`
}

// SlabConfig tunes pool.SlabAllocator.
type SlabConfig struct {
	MaxCached int `yaml:"max_cached"`
	MaxBlocks int `yaml:"max_blocks"`
}

// MetricsConfig enables Prometheus export.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Component string `yaml:"component"`
}

// DefaultConfig returns heap-backed rings of ring.DefaultCapacity without metrics.
func DefaultConfig() Config {
	return Config{
		Capacity:  ring.DefaultCapacity,
		Allocator: AllocatorHeap,
		Slab: SlabConfig{
			MaxCached: 64,
		},
	}
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "control: decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "control: read config %s", path)
	}
	return ParseConfig(data)
}

// Validate checks field ranges.
func (c Config) Validate() error {
	invalid := func(msg string, key string, v any) error {
		return api.NewError(api.ErrCodeInvalidArgument, "control: "+msg).WithContext(key, v)
	}
	if c.Capacity < 0 {
		return invalid("capacity must not be negative", "capacity", c.Capacity)
	}
	switch c.Allocator {
	case AllocatorHeap, AllocatorSlab:
	default:
		return invalid("unknown allocator", "allocator", c.Allocator)
	}
	if c.Slab.MaxCached < 0 {
		return invalid("slab.max_cached must not be negative", "slab.max_cached", c.Slab.MaxCached)
	}
	if c.Slab.MaxBlocks < 0 {
		return invalid("slab.max_blocks must not be negative", "slab.max_blocks", c.Slab.MaxBlocks)
	}
	if c.Metrics.Enabled && c.Metrics.Component == "" {
		return invalid("metrics.component is required when metrics are enabled", "metrics.component", "")
	}
	return nil
}

// NewAllocator builds the allocator selected by cfg.
func NewAllocator[T any](cfg Config) (api.Allocator[T], error) {
	switch cfg.Allocator {
	case AllocatorHeap, "":
		return pool.HeapAllocator[T]{}, nil
	case AllocatorSlab:
		return pool.NewSlabAllocator[T](
			pool.WithMaxCached[T](cfg.Slab.MaxCached),
			pool.WithMaxBlocks[T](cfg.Slab.MaxBlocks),
		), nil
	}
	return nil, api.NewError(api.ErrCodeNotSupported, "control: unknown allocator").
		WithContext("allocator", cfg.Allocator)
}

// NewRing builds a ring from cfg. reg may be nil, which disables metrics
// regardless of cfg; logger may be nil.
func NewRing[T any](cfg Config, reg prometheus.Registerer, logger *zap.Logger) (*ring.Ring[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	alloc, err := NewAllocator[T](cfg)
	if err != nil {
		return nil, err
	}
	opts := []ring.Option[T]{
		ring.WithAllocator[T](alloc),
		ring.WithLogger[T](logger),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, ring.WithMetrics[T](reg, cfg.Metrics.Component))
	}
	return ring.New[T](cfg.Capacity, opts...)
}
