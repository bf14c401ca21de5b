package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	key, value int
}

type treeNode struct {
	item        pair
	left, right Handle
}

func TestBoundedPolicy(t *testing.T) {
	budget := NewBudget(1 << 10)
	b := NewBounded[pair](10, WithSource(budget))

	p := b.Policy()
	assert.Equal(t, 10, p.Capacity)
	assert.Same(t, budget, p.Source)
	assert.False(t, p.Synchronized)
	assert.NotNil(t, p.Logger)
}

func TestRebindBounded(t *testing.T) {
	values := NewBounded[pair](10)
	h, err := values.Allocate(3)
	require.NoError(t, err)

	nodes := Rebind[treeNode](values)
	rebound, ok := nodes.(*Bounded[treeNode])
	require.True(t, ok, "rebinding a bounded allocator must yield a bounded allocator, got %T", nodes)
	assert.Equal(t, 10, rebound.Capacity())
	assert.False(t, rebound.Live(), "rebound allocator must own its own block")

	for range 10 {
		_, err := nodes.Allocate(1)
		require.NoError(t, err)
	}
	_, err = nodes.Allocate(1)
	require.ErrorIs(t, err, ErrOutOfCapacity)

	assert.Equal(t, 3, values.Outstanding(), "rebound allocations must not touch the original")
	require.NoError(t, values.Deallocate(h, 3))
	assert.False(t, values.Live())
	assert.True(t, rebound.Live())
}

func TestRebindSharesSource(t *testing.T) {
	values := NewBounded[int64](4, WithSource(NewBudget(4*8)))
	_, err := values.Allocate(1)
	require.NoError(t, err)

	other := Rebind[int64](values)
	_, err = other.Allocate(1)
	require.ErrorIs(t, err, ErrAllocationFailure)
}

func TestRebindHeap(t *testing.T) {
	nodes := Rebind[treeNode](NewHeap[pair]())
	_, ok := nodes.(*Heap[treeNode])
	assert.True(t, ok, "got %T", nodes)
}

func TestNewFromPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		check  func(t *testing.T, a Allocator[int])
	}{
		{"unbounded", Policy{}, func(t *testing.T, a Allocator[int]) {
			assert.IsType(t, &Heap[int]{}, a)
		}},
		{"bounded", Policy{Capacity: 5}, func(t *testing.T, a Allocator[int]) {
			b, ok := a.(*Bounded[int])
			require.True(t, ok)
			assert.Equal(t, 5, b.Capacity())
		}},
		{"synchronized", Policy{Capacity: 5, Synchronized: true}, func(t *testing.T, a Allocator[int]) {
			assert.IsType(t, &Synchronized[int]{}, a)
			assert.True(t, a.Policy().Synchronized)
			assert.Equal(t, 5, a.Policy().Capacity)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, New[int](tt.policy))
		})
	}
}
