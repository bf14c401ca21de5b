package arena

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynchronize(t *testing.T) {
	s := Synchronize[int](NewBounded[int](8))
	require.NotNil(t, s)
	assert.Same(t, s, Synchronize(s), "wrapping twice must not add a second lock")

	p := s.Policy()
	assert.True(t, p.Synchronized)
	assert.Equal(t, 8, p.Capacity)
}

func TestSynchronizedOperations(t *testing.T) {
	s := Synchronize[int](NewBounded[int](2))

	h, err := s.Allocate(1)
	require.NoError(t, err)
	require.NoError(t, s.Construct(h, 5))

	p, err := s.At(h)
	require.NoError(t, err)
	assert.Equal(t, 5, *p)
	assert.Equal(t, 1, s.Outstanding())
	assert.True(t, s.Metrics().Live)

	require.NoError(t, s.Destroy(h))
	require.NoError(t, s.Deallocate(h, 1))
	require.ErrorIs(t, s.Deallocate(h, 1), ErrUseAfterRelease)
	assert.False(t, s.Metrics().Live)
}

func TestSynchronizedConcurrentAccess(t *testing.T) {
	const (
		goroutines = 10
		perRoutine = 100
	)
	s := Synchronize[int](NewBounded[int](goroutines * perRoutine))

	var wg sync.WaitGroup
	handles := make([][]Handle, goroutines)
	for g := range goroutines {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range perRoutine {
				h, err := s.Allocate(1)
				if !assert.NoError(t, err) {
					return
				}
				assert.NoError(t, s.Construct(h, g*perRoutine+i))
				handles[g] = append(handles[g], h)
			}
		}(g)
	}
	wg.Wait()
	require.Equal(t, goroutines*perRoutine, s.Outstanding())

	_, err := s.Allocate(1)
	require.ErrorIs(t, err, ErrOutOfCapacity)

	seen := make(map[int]bool)
	for _, hs := range handles {
		for _, h := range hs {
			assert.False(t, seen[h.Index()], "slot %d handed out twice", h.Index())
			seen[h.Index()] = true
		}
	}

	for g := range goroutines {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for _, h := range handles[g] {
				assert.NoError(t, s.Destroy(h))
				assert.NoError(t, s.Deallocate(h, 1))
			}
		}(g)
	}
	wg.Wait()
	assert.Zero(t, s.Outstanding())
	assert.False(t, s.Metrics().Live)
}

func TestSynchronizedRebind(t *testing.T) {
	s := Synchronize[int](NewHeap[int]())
	r := Rebind[string](s)

	_, ok := r.(*Synchronized[string])
	assert.True(t, ok, "rebinding a synchronized allocator must stay synchronized, got %T", r)
}

func TestSynchronizedRebindSharedBudget(t *testing.T) {
	budget := NewBudget(8 + 8)
	ints := Synchronize[int](NewBounded[int](1, WithSource(budget)))
	longs := Rebind[int64](ints)

	churn := func(a interface {
		Allocate(int) (Handle, error)
		Deallocate(Handle, int) error
	}) {
		for range 1000 {
			h, err := a.Allocate(1)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, a.Deallocate(h, 1))
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		churn(ints)
	}()
	go func() {
		defer wg.Done()
		churn(longs)
	}()
	wg.Wait()

	assert.Zero(t, budget.InUse(), "every block must be returned to the shared budget")
	assert.False(t, ints.Metrics().Live)
	assert.False(t, longs.Metrics().Live)
}
