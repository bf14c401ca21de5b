package arena

import "log/slog"

// Allocator is the backing-store capability a generic container needs:
// raw storage for elements of type T, in-place construction and teardown,
// and enough policy to derive an equivalent allocator for another type.
//
// Implementations:
//   - Bounded: fixed-capacity arena
//   - Heap: growable, unbounded
//   - Synchronize: mutex wrapper over either
type Allocator[T any] interface {
	Rebinder

	// Allocate returns storage for n consecutive elements.
	Allocate(n int) (Handle, error)

	// Deallocate returns storage obtained from Allocate.
	Deallocate(h Handle, n int) error

	// Construct initializes the element at h with v.
	Construct(h Handle, v T) error

	// Destroy tears down the element at h, keeping its storage allocated.
	Destroy(h Handle) error

	// At returns a pointer to the element at h for in-place access.
	At(h Handle) (*T, error)

	// Outstanding returns the number of elements currently allocated.
	Outstanding() int

	// Metrics returns a snapshot of allocator statistics.
	Metrics() ArenaMetrics
}

// Policy is the element-type independent description of an allocator. It
// carries everything needed to build an equivalent allocator for a
// different element type.
type Policy struct {
	Capacity     int // element capacity; 0 means unbounded
	Source       BlockSource
	Logger       *slog.Logger
	Synchronized bool
}

// Rebinder is implemented by allocators that can describe their Policy.
type Rebinder interface {
	Policy() Policy
}

// New builds an allocator for T from p.
func New[T any](p Policy) Allocator[T] {
	var a Allocator[T]
	if p.Capacity > 0 {
		a = NewBounded[T](p.Capacity, WithSource(p.Source), WithLogger(p.Logger))
	} else {
		a = NewHeap[T]()
	}
	if p.Synchronized {
		a = Synchronize(a)
	}
	return a
}

// Rebind returns a new allocator for U with the same policy as from. The
// result owns independent storage: nothing is shared with from except the
// block source.
func Rebind[U any](from Rebinder) Allocator[U] {
	return New[U](from.Policy())
}

// Bounded is an Allocator backed by a fixed-capacity Arena.
type Bounded[T any] struct {
	*Arena[T]
}

// NewBounded creates a Bounded allocator over a new Arena of the given
// capacity.
func NewBounded[T any](capacity int, opts ...Option) *Bounded[T] {
	return &Bounded[T]{Arena: NewArena[T](capacity, opts...)}
}

// Policy implements Rebinder.
func (b *Bounded[T]) Policy() Policy {
	return Policy{
		Capacity: b.capacity,
		Source:   b.source,
		Logger:   b.log,
	}
}

var (
	_ Allocator[int] = (*Bounded[int])(nil)
	_ Allocator[int] = (*Heap[int])(nil)
	_ Allocator[int] = (*Synchronized[int])(nil)
)
