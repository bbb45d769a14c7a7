package ring_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ring/ring"
)

// sliceModel is the reference behaviour: a slice trimmed to capacity from
// the opposite end after every push.
type sliceModel struct {
	capacity int
	items    []int
}

func (m *sliceModel) pushBack(v int) {
	if len(m.items) == m.capacity {
		m.items = m.items[1:]
	}
	m.items = append(m.items, v)
}

func (m *sliceModel) pushFront(v int) {
	if len(m.items) == m.capacity {
		m.items = m.items[:len(m.items)-1]
	}
	m.items = append([]int{v}, m.items...)
}

func TestRingMatchesSliceModel(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 7, 16} {
		for seed := int64(1); seed <= 4; seed++ {
			t.Run(fmt.Sprintf("cap=%d/seed=%d", capacity, seed), func(t *testing.T) {
				runModel(t, capacity, seed)
			})
		}
	}
}

func runModel(t *testing.T, capacity int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	r, err := ring.New[int](capacity)
	require.NoError(t, err)
	m := &sliceModel{capacity: capacity}

	for step := 0; step < 500; step++ {
		v := rng.Intn(1000)
		switch op := rng.Intn(10); {
		case op < 3:
			require.NoError(t, r.PushBack(v))
			m.pushBack(v)
		case op < 6:
			require.NoError(t, r.PushFront(v))
			m.pushFront(v)
		case op == 6:
			if len(m.items) > 0 {
				require.Equal(t, m.items[len(m.items)-1], r.PopBack())
				m.items = m.items[:len(m.items)-1]
			}
		case op == 7:
			if len(m.items) > 0 {
				require.Equal(t, m.items[0], r.PopFront())
				m.items = m.items[1:]
			}
		case op == 8:
			n := len(m.items) + rng.Intn(4)
			if n < 1 {
				n = 1
			}
			require.NoError(t, r.Resize(n))
			m.capacity = n
		default:
			if len(m.items) > 0 {
				i := rng.Intn(len(m.items))
				r.Set(i, v)
				m.items[i] = v
			}
		}

		require.Equal(t, m.capacity, r.Cap(), "step %d", step)
		require.Equal(t, len(m.items), r.Len(), "step %d", step)
		require.Equal(t, len(m.items) == m.capacity, r.Full(), "step %d", step)
		if len(m.items) == 0 {
			require.Empty(t, r.Slice())
			continue
		}
		require.Equal(t, m.items, r.Slice(), "step %d", step)
		requireSequence(t, r, m.items)
	}
}
