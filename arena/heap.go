package arena

import (
	"unsafe"

	"github.com/pkg/errors"
)

// heapChunkLen is the number of slots added each time a Heap grows.
const heapChunkLen = 64

type heapSlot[T any] struct {
	value T
	gen   uint32
	owner uint32 // start index of the allocation holding the slot
	state slotState
}

// Heap is a growable, unbounded Allocator. Storage grows in fixed-size
// chunks so pointers returned by At stay valid while the heap grows.
// Released single slots are reused; each reuse bumps the slot generation
// so handles to the old occupant are rejected.
type Heap[T any] struct {
	chunks [][]heapSlot[T]
	next   int      // first never-used slot
	free   []uint32 // released slots available for reuse
	live   int
}

// NewHeap creates an empty Heap.
func NewHeap[T any]() *Heap[T] {
	return &Heap[T]{}
}

// Allocate returns storage for n consecutive elements. Multi-element
// requests are always served from never-used slots.
func (hp *Heap[T]) Allocate(n int) (Handle, error) {
	if n <= 0 {
		return Handle{}, errors.Wrapf(ErrInvalidCount, "allocate %d", n)
	}
	if n == 1 && len(hp.free) > 0 {
		idx := hp.free[len(hp.free)-1]
		hp.free = hp.free[:len(hp.free)-1]
		s := hp.slot(int(idx))
		s.state = slotAllocated
		s.owner = idx
		hp.live++
		return Handle{index: idx, gen: s.gen}, nil
	}
	if uint64(hp.next)+uint64(n) > MaxCapacity {
		return Handle{}, errors.Wrapf(ErrOutOfCapacity, "allocate %d with %d slots in use", n, hp.next)
	}

	for len(hp.chunks)*heapChunkLen < hp.next+n {
		hp.chunks = append(hp.chunks, make([]heapSlot[T], heapChunkLen))
	}
	h := Handle{index: uint32(hp.next), gen: 1}
	for i := hp.next; i < hp.next+n; i++ {
		s := hp.slot(i)
		s.gen = 1
		s.owner = h.index
		s.state = slotAllocated
	}
	hp.next += n
	hp.live += n
	return h, nil
}

// Deallocate returns n elements starting at h to the free list. The range
// must lie within a single allocation. Nothing changes if any element in
// the range is not live.
func (hp *Heap[T]) Deallocate(h Handle, n int) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidCount, "deallocate %d", n)
	}
	for i := range n {
		at := h.Offset(i)
		if !at.IsZero() && at.Index() < hp.next {
			if s := hp.slot(at.Index()); s.state == slotFree && s.gen == at.gen+1 {
				return errors.Wrapf(ErrDoubleRelease, "handle %v", at)
			}
		}
		s, err := hp.lookup(at)
		if err != nil {
			return err
		}
		if s.owner != hp.slot(h.Index()).owner {
			return errors.Wrapf(ErrDoubleRelease, "range %v+%d spans allocations at slot %d", h, n, at.Index())
		}
	}

	var zero T
	for i := range n {
		idx := int(h.index) + i
		s := hp.slot(idx)
		s.value = zero
		s.state = slotFree
		s.gen++
		if s.gen == 0 {
			s.gen = 1
		}
		hp.free = append(hp.free, uint32(idx))
	}
	hp.live -= n
	return nil
}

// Construct stores v in allocated storage.
func (hp *Heap[T]) Construct(h Handle, v T) error {
	s, err := hp.lookup(h)
	if err != nil {
		return err
	}
	s.value = v
	s.state = slotConstructed
	return nil
}

// Destroy tears down the value stored at h without releasing the storage.
func (hp *Heap[T]) Destroy(h Handle) error {
	s, err := hp.lookup(h)
	if err != nil {
		return err
	}
	if s.state == slotConstructed {
		teardown(&s.value)
	}
	var zero T
	s.value = zero
	s.state = slotAllocated
	return nil
}

// At returns a pointer to the element stored at h.
func (hp *Heap[T]) At(h Handle) (*T, error) {
	s, err := hp.lookup(h)
	if err != nil {
		return nil, err
	}
	return &s.value, nil
}

// Outstanding returns the number of live elements.
func (hp *Heap[T]) Outstanding() int {
	return hp.live
}

// Policy implements Rebinder. A Heap has no capacity limit.
func (hp *Heap[T]) Policy() Policy {
	return Policy{}
}

// Metrics returns a snapshot of heap statistics. Capacity is the number of
// slots reserved so far.
func (hp *Heap[T]) Metrics() ArenaMetrics {
	var zero T
	slots := len(hp.chunks) * heapChunkLen
	m := ArenaMetrics{
		Capacity:    slots,
		Offset:      hp.next,
		Outstanding: hp.live,
		BlockBytes:  slots * int(unsafe.Sizeof(zero)),
		SizeInUse:   hp.live * int(unsafe.Sizeof(zero)),
		Live:        len(hp.chunks) > 0,
	}
	if slots > 0 {
		m.Utilization = float64(hp.live) / float64(slots)
	}
	return m
}

func (hp *Heap[T]) slot(i int) *heapSlot[T] {
	return &hp.chunks[i/heapChunkLen][i%heapChunkLen]
}

func (hp *Heap[T]) lookup(h Handle) (*heapSlot[T], error) {
	if h.IsZero() || h.Index() >= hp.next {
		return nil, errors.Wrapf(ErrUseAfterRelease, "handle %v", h)
	}
	s := hp.slot(h.Index())
	if s.state == slotFree || s.gen != h.gen {
		return nil, errors.Wrapf(ErrUseAfterRelease, "handle %v, slot generation %d", h, s.gen)
	}
	return s, nil
}
