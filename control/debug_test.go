package control_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ring/control"
	"github.com/momentics/hioload-ring/pool"
	"github.com/momentics/hioload-ring/ring"
)

func TestDebugProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	dp.RegisterProbe("b", func() any { return 2 })
	dp.RegisterProbe("a", func() any { return "one" })
	assert.Equal(t, []string{"a", "b"}, dp.Names())
	assert.Equal(t, map[string]any{"a": "one", "b": 2}, dp.DumpState())

	v, ok := dp.Probe("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	dp.UnregisterProbe("a")
	assert.Equal(t, []string{"b"}, dp.Names())
	_, ok = dp.Probe("a")
	assert.False(t, ok)

	dp.RegisterProbe("nil", nil)
	assert.Equal(t, []string{"b"}, dp.Names())
}

func TestDebugProbePanicIsReported(t *testing.T) {
	dp := control.NewDebugProbes()
	dp.RegisterProbe("bad", func() any { panic("ring: Front on empty ring") })
	dp.RegisterProbe("good", func() any { return 1 })

	state := dp.DumpState()
	assert.Equal(t, "probe panic: ring: Front on empty ring", state["bad"])
	assert.Equal(t, 1, state["good"])
}

func TestRegisterDebugRing(t *testing.T) {
	r, err := ring.New[int](2)
	require.NoError(t, err)
	require.NoError(t, r.PushBack(1))

	dp := control.NewDebugProbes()
	control.RegisterDebug(dp, "ring", r)
	require.NoError(t, r.PushBack(2))

	state, ok := dp.DumpState()["ring"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2, state["size"], "probe reads live state")
	assert.Equal(t, []int{1, 2}, state["data"])
}

func TestPlatformProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	control.RegisterPlatformProbes(dp)
	state := dp.DumpState()
	assert.Greater(t, state["platform.cpus"], 0)
	assert.Contains(t, state["platform.arch"], "/")
	assert.GreaterOrEqual(t, state["platform.cache_line"], 0)
}

func TestSlabCollector(t *testing.T) {
	slab := pool.NewSlabAllocator[int]()
	r, err := ring.New[int](4, ring.WithAllocator[int](slab))
	require.NoError(t, err)
	r.Release()
	require.NoError(t, r.Resize(4))

	c := control.NewSlabCollector(slab, "test")
	expected := `
# HELP hioload_slab_blocks_cached Blocks parked on free lists
# TYPE hioload_slab_blocks_cached gauge
hioload_slab_blocks_cached{component="test"} 0
# HELP hioload_slab_blocks_in_use Blocks currently owned by rings
# TYPE hioload_slab_blocks_in_use gauge
hioload_slab_blocks_in_use{component="test"} 1
# HELP hioload_slab_reused_total Allocations served from a free list
# TYPE hioload_slab_reused_total counter
hioload_slab_reused_total{component="test"} 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"hioload_slab_blocks_cached", "hioload_slab_blocks_in_use", "hioload_slab_reused_total"))

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))
	assert.Equal(t, 5, testutil.CollectAndCount(c))
}
