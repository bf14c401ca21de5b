// Package list implements a singly linked list whose nodes live in an
// arena.Allocator.
//
// A List owns its node chain and its allocator. By default nodes come from
// a growable heap; NewWithAllocator rebinds any allocator for the value
// type (for example a fixed-capacity arena) to the list's node type.
//
//	l := list.NewBounded[int](10)
//	for i := range 10 {
//		if err := l.Append(i); err != nil {
//			return err
//		}
//	}
//	for v := range l.All() {
//		fmt.Println(v)
//	}
//	defer l.Free()
package list

import (
	"iter"

	"github.com/pavanmanishd/arenakit/arena"
)

type node[V any] struct {
	value V
	next  arena.Handle
}

// Destroy forwards teardown to the stored value.
func (n *node[V]) Destroy() {
	if d, ok := any(&n.value).(arena.Destroyer); ok {
		d.Destroy()
	}
}

// List is a singly linked list. The zero value is not usable; use New,
// NewBounded or NewWithAllocator. Not goroutine-safe.
type List[V any] struct {
	alloc arena.Allocator[node[V]]
	root  arena.Handle // first node
	tail  arena.Handle // last node, for O(1) Append
	len   int
}

// New creates an empty list backed by a growable heap.
func New[V any]() *List[V] {
	return &List[V]{alloc: arena.NewHeap[node[V]]()}
}

// NewBounded creates an empty list holding at most capacity values in a
// fixed-capacity arena.
func NewBounded[V any](capacity int, opts ...arena.Option) *List[V] {
	return &List[V]{alloc: arena.NewBounded[node[V]](capacity, opts...)}
}

// NewWithAllocator creates an empty list whose nodes live in an allocator
// rebound from a. The list never allocates from a itself.
func NewWithAllocator[V any](a arena.Allocator[V]) *List[V] {
	return &List[V]{alloc: arena.Rebind[node[V]](a)}
}

// Append adds v after the last element. On error the list is unchanged.
func (l *List[V]) Append(v V) error {
	h, err := l.alloc.Allocate(1)
	if err != nil {
		return err
	}
	if err := l.alloc.Construct(h, node[V]{value: v}); err != nil {
		_ = l.alloc.Deallocate(h, 1)
		return err
	}

	if l.root.IsZero() {
		l.root = h
	} else {
		l.node(l.tail).next = h
	}
	l.tail = h
	l.len++
	return nil
}

// Head returns the first element, or false if the list is empty.
func (l *List[V]) Head() (V, bool) {
	if l.root.IsZero() {
		var zero V
		return zero, false
	}
	return l.node(l.root).value, true
}

// Tail returns the most recently appended element, or false if the list is
// empty.
func (l *List[V]) Tail() (V, bool) {
	if l.tail.IsZero() {
		var zero V
		return zero, false
	}
	return l.node(l.tail).value, true
}

// Len returns the number of elements.
func (l *List[V]) Len() int {
	return l.len
}

// Begin returns an iterator at the first element.
func (l *List[V]) Begin() Iterator[V] {
	return Iterator[V]{alloc: l.alloc, at: l.root}
}

// End returns the end iterator.
func (l *List[V]) End() Iterator[V] {
	return Iterator[V]{alloc: l.alloc}
}

// All returns an iterator over the elements in append order.
func (l *List[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for h := l.root; !h.IsZero(); {
			n := l.node(h)
			if !yield(n.value) {
				return
			}
			h = n.next
		}
	}
}

// Clone returns a deep copy of l with a fresh allocator of the same
// policy. If the copy cannot be completed it is freed and the error
// returned.
func (l *List[V]) Clone() (*List[V], error) {
	return l.cloneInto(&List[V]{alloc: arena.Rebind[node[V]](l.alloc)})
}

// CloneWithAllocator returns a deep copy of l whose nodes live in an
// allocator rebound from a.
func (l *List[V]) CloneWithAllocator(a arena.Allocator[V]) (*List[V], error) {
	return l.cloneInto(NewWithAllocator(a))
}

func (l *List[V]) cloneInto(c *List[V]) (*List[V], error) {
	for v := range l.All() {
		if err := c.Append(v); err != nil {
			_ = c.Free()
			return nil, err
		}
	}
	return c, nil
}

// Move transfers the elements and the allocator holding them to a new
// list. l is left empty with a fresh allocator of the same policy, ready
// to be appended to or freed.
func (l *List[V]) Move() *List[V] {
	m := &List[V]{alloc: l.alloc, root: l.root, tail: l.tail, len: l.len}
	l.alloc = arena.Rebind[node[V]](m.alloc)
	l.root, l.tail, l.len = arena.Handle{}, arena.Handle{}, 0
	return m
}

// Free destroys every element and returns every node to the allocator.
// The list is empty afterwards and may be reused.
func (l *List[V]) Free() error {
	var firstErr error
	for h := l.root; !h.IsZero(); {
		next := l.node(h).next
		if err := l.alloc.Destroy(h); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := l.alloc.Deallocate(h, 1); err != nil && firstErr == nil {
			firstErr = err
		}
		h = next
	}
	l.root, l.tail, l.len = arena.Handle{}, arena.Handle{}, 0
	return firstErr
}

// Outstanding returns the number of nodes currently held in the list's
// allocator.
func (l *List[V]) Outstanding() int {
	return l.alloc.Outstanding()
}

// Metrics returns a snapshot of the list's allocator statistics.
func (l *List[V]) Metrics() arena.ArenaMetrics {
	return l.alloc.Metrics()
}

// node resolves a handle owned by the list.
func (l *List[V]) node(h arena.Handle) *node[V] {
	n, err := l.alloc.At(h)
	if err != nil {
		panic("list: corrupted node chain: " + err.Error())
	}
	return n
}
