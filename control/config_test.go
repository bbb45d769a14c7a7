package control_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/control"
	"github.com/momentics/hioload-ring/pool"
	"github.com/momentics/hioload-ring/ring"
)

func TestDefaultConfig(t *testing.T) {
	cfg := control.DefaultConfig()
	assert.Equal(t, ring.DefaultCapacity, cfg.Capacity)
	assert.Equal(t, control.AllocatorHeap, cfg.Allocator)
	assert.False(t, cfg.Metrics.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestParseConfig(t *testing.T) {
	cfg, err := control.ParseConfig([]byte(`
capacity: 32
allocator: slab
slab:
  max_blocks: 4
metrics:
  enabled: true
  component: ingest
`))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Capacity)
	assert.Equal(t, control.AllocatorSlab, cfg.Allocator)
	assert.Equal(t, 64, cfg.Slab.MaxCached, "unset fields keep defaults")
	assert.Equal(t, 4, cfg.Slab.MaxBlocks)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "ingest", cfg.Metrics.Component)
}

func TestParseConfigErrors(t *testing.T) {
	cases := map[string]string{
		"negative capacity": "capacity: -1",
		"unknown allocator": "allocator: arena",
		"negative cache":    "slab: {max_cached: -1}",
		"negative blocks":   "slab: {max_blocks: -2}",
		"missing component": "metrics: {enabled: true}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := control.ParseConfig([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, api.ErrInvalidArgument)
		})
	}

	_, err := control.ParseConfig([]byte("capacity: [1"))
	require.Error(t, err)
	assert.Equal(t, api.ErrCodeInternal, api.CodeOf(err))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacity: 3\n"), 0o600))

	cfg, err := control.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Capacity)

	_, err = control.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewAllocator(t *testing.T) {
	cfg := control.DefaultConfig()
	a, err := control.NewAllocator[int](cfg)
	require.NoError(t, err)
	assert.IsType(t, pool.HeapAllocator[int]{}, a)

	cfg.Allocator = control.AllocatorSlab
	a, err = control.NewAllocator[int](cfg)
	require.NoError(t, err)
	assert.IsType(t, &pool.SlabAllocator[int]{}, a)

	cfg.Allocator = "arena"
	_, err = control.NewAllocator[int](cfg)
	assert.ErrorIs(t, err, api.ErrNotSupported)
}

func TestNewRing(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Capacity = 4
	cfg.Allocator = control.AllocatorSlab
	cfg.Slab.MaxBlocks = 1
	cfg.Metrics = control.MetricsConfig{Enabled: true, Component: "cfg"}

	reg := prometheus.NewRegistry()
	r, err := control.NewRing[string](cfg, reg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer r.Release()

	assert.Equal(t, 4, r.Cap())
	require.NoError(t, r.PushBack("a"))
	require.ErrorIs(t, r.Resize(8), api.ErrResourceExhausted)

	n, err := testutil.GatherAndCount(reg, "hioload_ring_pushes_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	cfg.Capacity = -1
	_, err = control.NewRing[string](cfg, nil, nil)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestNewRingWithoutRegistry(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Capacity = 0
	cfg.Metrics = control.MetricsConfig{Enabled: true, Component: "ignored"}

	r, err := control.NewRing[int](cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ring.DefaultCapacity, r.Cap())
}
