package list

import (
	"github.com/pavanmanishd/arenakit/arena"
	"github.com/pkg/errors"
)

// ErrEnd is returned when reading past the last element.
var ErrEnd = errors.New("list: iterator at end")

// Iterator is a forward-only cursor over a list's nodes. It does not own
// anything; it is invalidated by Free.
type Iterator[V any] struct {
	alloc arena.Allocator[node[V]]
	at    arena.Handle
}

// Done reports whether it is the end iterator.
func (it Iterator[V]) Done() bool {
	return it.at.IsZero()
}

// Equal reports whether it and other reference the same node. All end
// iterators are equal.
func (it Iterator[V]) Equal(other Iterator[V]) bool {
	if it.Done() || other.Done() {
		return it.Done() && other.Done()
	}
	return it.alloc == other.alloc && it.at == other.at
}

// Value returns a copy of the referenced element. It fails with ErrEnd on
// the end iterator.
func (it Iterator[V]) Value() (V, error) {
	var zero V
	if it.Done() {
		return zero, errors.WithStack(ErrEnd)
	}
	n, err := it.alloc.At(it.at)
	if err != nil {
		return zero, err
	}
	return n.value, nil
}

// Next advances to the following node. Advancing the end iterator is a
// no-op.
func (it *Iterator[V]) Next() {
	if it.Done() {
		return
	}
	n, err := it.alloc.At(it.at)
	if err != nil {
		it.at = arena.Handle{}
		return
	}
	it.at = n.next
}
