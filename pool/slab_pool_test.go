package pool_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/pool"
)

func TestSlabReuse(t *testing.T) {
	s := pool.NewSlabAllocator[int]()
	b1, err := s.Allocate(8)
	require.NoError(t, err)
	b1[3] = 42
	s.Deallocate(b1)

	b2, err := s.Allocate(8)
	require.NoError(t, err)
	assert.Same(t, &b1[0], &b2[0], "block should be reused")
	assert.Equal(t, 0, b2[3], "reused block must be zeroed")

	b3, err := s.Allocate(4)
	require.NoError(t, err)
	assert.Len(t, b3, 4)

	stats := s.Stats()
	assert.Equal(t, int64(3), stats.TotalAlloc)
	assert.Equal(t, int64(1), stats.TotalFree)
	assert.Equal(t, int64(1), stats.Reused)
	assert.Equal(t, int64(2), stats.InUse)
	assert.Equal(t, int64(0), stats.Cached)
	assert.InDelta(t, 1.0/3.0, stats.ReuseRatio(), 1e-9)
}

func TestSlabMaxCached(t *testing.T) {
	s := pool.NewSlabAllocator[int](pool.WithMaxCached[int](1))
	a, _ := s.Allocate(2)
	b, _ := s.Allocate(2)
	s.Deallocate(a)
	s.Deallocate(b)
	assert.Equal(t, int64(1), s.Stats().Cached)

	s.Purge()
	assert.Equal(t, int64(0), s.Stats().Cached)
}

func TestSlabMaxBlocks(t *testing.T) {
	s := pool.NewSlabAllocator[int](pool.WithMaxBlocks[int](2))
	a, err := s.Allocate(1)
	require.NoError(t, err)
	_, err = s.Allocate(1)
	require.NoError(t, err)

	_, err = s.Allocate(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrResourceExhausted))
	assert.Equal(t, api.ErrCodeResourceExhausted, api.CodeOf(err))

	s.Deallocate(a)
	_, err = s.Allocate(1)
	assert.NoError(t, err)
}

func TestSlabNegativeSize(t *testing.T) {
	_, err := pool.NewSlabAllocator[int]().Allocate(-1)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
	s := pool.NewSlabAllocator[int]()
	s.Deallocate(nil)
	assert.Equal(t, int64(0), s.Stats().TotalFree)
}

func TestSlabHooks(t *testing.T) {
	veto := errors.New("veto")
	var destroyed []string
	s := pool.NewSlabAllocator[string](pool.WithHooks(pool.Hooks[string]{
		OnConstruct: func(_ *string, v string) error {
			if v == "" {
				return veto
			}
			return nil
		},
		OnDestroy: func(slot *string) { destroyed = append(destroyed, *slot) },
	}))

	slot := "stale"
	require.ErrorIs(t, s.Construct(&slot, ""), veto)
	assert.Equal(t, "", slot)

	require.NoError(t, s.Construct(&slot, "a"))
	assert.Equal(t, "a", slot)
	s.Destroy(&slot)
	assert.Equal(t, "", slot)
	assert.Equal(t, []string{"a"}, destroyed)
}

func TestSlabAllocatorTraits(t *testing.T) {
	s1 := pool.NewSlabAllocator[int]()
	s2 := pool.NewSlabAllocator[int]()
	assert.True(t, s1.Equal(s1))
	assert.False(t, s1.Equal(s2))
	assert.False(t, s1.Equal(pool.HeapAllocator[int]{}))
	assert.Same(t, s1, api.SelectOnCopy[int](s1))
	assert.False(t, api.PropagatesOnSwap[int](s1))
}

func TestSlabConcurrentUse(t *testing.T) {
	s := pool.NewSlabAllocator[int]()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				b, err := s.Allocate(16)
				if !assert.NoError(t, err) {
					return
				}
				s.Deallocate(b)
			}
		}()
	}
	wg.Wait()

	stats := s.Stats()
	assert.Equal(t, int64(0), stats.InUse)
	assert.Equal(t, int64(4000), stats.TotalAlloc)
	assert.Equal(t, stats.TotalAlloc, stats.TotalFree)
	assert.LessOrEqual(t, stats.Cached, int64(8))
}
