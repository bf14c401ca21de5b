package arena

import (
	"fmt"
	"log/slog"
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// DefaultCapacity is the element capacity used when NewArena is given a
// non-positive capacity.
const DefaultCapacity = 64

// MaxCapacity is the largest number of slots an allocator can address
// with a Handle.
const MaxCapacity = math.MaxUint32

type slotState uint8

const (
	slotFree slotState = iota
	slotAllocated
	slotConstructed
)

// Arena is a fixed-capacity bump allocator for values of type T. Its
// backing block holds exactly capacity elements, is created on the first
// allocation and dropped as soon as every allocation has been returned.
// Not goroutine-safe. Use Synchronize for concurrent access.
type Arena[T any] struct {
	values      []T // backing block, nil while drained
	states      []slotState
	owners      []uint32 // start index of the allocation holding each slot
	capacity    int
	offset      int // bump cursor, in elements
	outstanding int
	cycle       uint32 // generation of the current block
	cycles      int

	source BlockSource
	log    *slog.Logger
}

// NewArena creates an empty Arena holding at most capacity elements.
// If capacity <= 0, DefaultCapacity is used. It panics if capacity exceeds
// MaxCapacity.
func NewArena[T any](capacity int, opts ...Option) *Arena[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if uint64(capacity) > MaxCapacity {
		panic(fmt.Sprintf("arena: capacity %d exceeds %d", capacity, uint64(MaxCapacity)))
	}
	c := newConfig(opts)
	return &Arena[T]{
		capacity: capacity,
		source:   c.source,
		log:      c.logger,
	}
}

// Allocate hands out storage for n consecutive elements at the current
// bump offset. Storage freed out of order is not reused until the arena
// has drained completely.
func (a *Arena[T]) Allocate(n int) (Handle, error) {
	if n <= 0 {
		return Handle{}, errors.Wrapf(ErrInvalidCount, "allocate %d", n)
	}
	if n > a.capacity {
		return Handle{}, errors.Wrapf(ErrOutOfCapacity, "allocate %d exceeds capacity %d", n, a.capacity)
	}
	if a.offset+n > a.capacity {
		return Handle{}, errors.Wrapf(ErrOutOfCapacity, "allocate %d with %d of %d remaining", n, a.capacity-a.offset, a.capacity)
	}
	if a.values == nil {
		if err := a.acquire(); err != nil {
			return Handle{}, err
		}
	}

	h := Handle{index: uint32(a.offset), gen: a.cycle}
	for i := a.offset; i < a.offset+n; i++ {
		a.states[i] = slotAllocated
		a.owners[i] = h.index
	}
	a.offset += n
	a.outstanding += n
	return h, nil
}

// Deallocate returns n elements starting at h. When the last outstanding
// element is returned the backing block is released and the next Allocate
// starts a fresh cycle. The range must lie within a single allocation,
// though part of one may be returned. Nothing changes if the range is not
// live.
func (a *Arena[T]) Deallocate(h Handle, n int) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidCount, "deallocate %d", n)
	}
	if err := a.check(h, n); err != nil {
		return err
	}
	if n > a.outstanding {
		return errors.Wrapf(ErrDoubleRelease, "deallocate %d with %d outstanding", n, a.outstanding)
	}
	start := int(h.index)
	for i := start; i < start+n; i++ {
		if a.states[i] == slotFree {
			return errors.Wrapf(ErrDoubleRelease, "slot %d", i)
		}
		if a.owners[i] != a.owners[start] {
			return errors.Wrapf(ErrDoubleRelease, "range %v+%d spans allocations at slot %d", h, n, i)
		}
	}

	var zero T
	for i := start; i < start+n; i++ {
		a.values[i] = zero
		a.states[i] = slotFree
	}
	a.outstanding -= n
	if a.outstanding == 0 {
		a.release()
	}
	return nil
}

// Construct stores v in allocated storage.
func (a *Arena[T]) Construct(h Handle, v T) error {
	i, err := a.lookup(h)
	if err != nil {
		return err
	}
	a.values[i] = v
	a.states[i] = slotConstructed
	return nil
}

// Destroy tears down the value stored at h without releasing the storage.
// Values implementing Destroyer have Destroy called first.
func (a *Arena[T]) Destroy(h Handle) error {
	i, err := a.lookup(h)
	if err != nil {
		return err
	}
	if a.states[i] == slotConstructed {
		teardown(&a.values[i])
	}
	var zero T
	a.values[i] = zero
	a.states[i] = slotAllocated
	return nil
}

// At returns a pointer to the element stored at h. The pointer is valid
// until the storage is deallocated.
func (a *Arena[T]) At(h Handle) (*T, error) {
	i, err := a.lookup(h)
	if err != nil {
		return nil, err
	}
	return &a.values[i], nil
}

// acquire creates the backing block for a new cycle.
func (a *Arena[T]) acquire() error {
	size := a.BlockBytes()
	if err := a.source.Acquire(size); err != nil {
		return errors.Wrapf(ErrAllocationFailure, "acquire %d bytes: %v", size, err)
	}
	a.values = make([]T, a.capacity)
	a.states = make([]slotState, a.capacity)
	a.owners = make([]uint32, a.capacity)
	a.offset = 0

	a.cycle++
	if a.cycle == 0 {
		a.cycle = 1
	}
	a.cycles++
	a.log.Debug("arena: acquired block", "bytes", size, "capacity", a.capacity, "cycle", a.cycle)
	return nil
}

// release drops the backing block once the arena has drained.
func (a *Arena[T]) release() {
	size := a.BlockBytes()
	a.values = nil
	a.states = nil
	a.owners = nil
	a.offset = 0
	a.source.Release(size)
	a.log.Debug("arena: released block", "bytes", size, "cycle", a.cycle)
}

// check validates that [h, h+n) lies inside the region handed out in the
// current cycle.
func (a *Arena[T]) check(h Handle, n int) error {
	if h.IsZero() || a.values == nil || h.gen != a.cycle {
		return errors.Wrapf(ErrUseAfterRelease, "handle %v, cycle %d", h, a.cycle)
	}
	if int(h.index)+n > a.offset {
		return errors.Wrapf(ErrUseAfterRelease, "handle %v+%d beyond offset %d", h, n, a.offset)
	}
	return nil
}

func (a *Arena[T]) lookup(h Handle) (int, error) {
	if err := a.check(h, 1); err != nil {
		return 0, err
	}
	i := int(h.index)
	if a.states[i] == slotFree {
		return 0, errors.Wrapf(ErrUseAfterRelease, "slot %d is free", i)
	}
	return i, nil
}

// ElemSize returns the size in bytes of one element.
func (a *Arena[T]) ElemSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// BlockBytes returns the size in bytes of the backing block.
func (a *Arena[T]) BlockBytes() int {
	return a.capacity * a.ElemSize()
}

// Destroyer is implemented by values that need teardown when they are
// destroyed in place.
type Destroyer interface {
	Destroy()
}

func teardown[T any](p *T) {
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
}
