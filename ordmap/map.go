// Package ordmap implements a sorted map (AVL tree) whose nodes live in an
// arena.Allocator. It is handed an allocator for its entries and rebinds
// it to its own node type, so a fixed-capacity arena can back the map
// without the map knowing about arenas.
package ordmap

import (
	"cmp"
	"iter"

	"github.com/pavanmanishd/arenakit/arena"
)

// Pair is a key/value entry.
type Pair[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

type node[K cmp.Ordered, V any] struct {
	pair        Pair[K, V]
	left, right arena.Handle
	height      int8
}

// Destroy forwards teardown to the stored value.
func (n *node[K, V]) Destroy() {
	if d, ok := any(&n.pair.Value).(arena.Destroyer); ok {
		d.Destroy()
	}
}

// Map is a sorted map from K to V. Not goroutine-safe.
type Map[K cmp.Ordered, V any] struct {
	alloc arena.Allocator[node[K, V]]
	root  arena.Handle
	len   int
}

// New creates an empty map backed by a growable heap.
func New[K cmp.Ordered, V any]() *Map[K, V] {
	return &Map[K, V]{alloc: arena.NewHeap[node[K, V]]()}
}

// NewWithAllocator creates an empty map whose nodes live in an allocator
// rebound from a.
func NewWithAllocator[K cmp.Ordered, V any](a arena.Allocator[Pair[K, V]]) *Map[K, V] {
	return &Map[K, V]{alloc: arena.Rebind[node[K, V]](a)}
}

// Set stores v under k, replacing any previous value. A replaced value is
// torn down like a freed one. Adding a new key allocates one node; on error
// the map is unchanged.
func (m *Map[K, V]) Set(k K, v V) error {
	if h := m.find(k); !h.IsZero() {
		n := m.node(h)
		n.Destroy()
		n.pair.Value = v
		return nil
	}

	h, err := m.alloc.Allocate(1)
	if err != nil {
		return err
	}
	if err := m.alloc.Construct(h, node[K, V]{pair: Pair[K, V]{Key: k, Value: v}, height: 1}); err != nil {
		_ = m.alloc.Deallocate(h, 1)
		return err
	}
	m.root = m.insert(m.root, h, k)
	m.len++
	return nil
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if h := m.find(k); !h.IsZero() {
		return m.node(h).pair.Value, true
	}
	var zero V
	return zero, false
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.len
}

// All returns an iterator over the entries in ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.walk(m.root, yield)
	}
}

// Keys returns the keys in ascending order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.len)
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// Free destroys every entry and returns every node to the allocator. The
// map is empty afterwards and may be reused.
func (m *Map[K, V]) Free() error {
	err := m.free(m.root)
	m.root, m.len = arena.Handle{}, 0
	return err
}

// Outstanding returns the number of nodes currently held in the map's
// allocator.
func (m *Map[K, V]) Outstanding() int {
	return m.alloc.Outstanding()
}

// Metrics returns a snapshot of the map's allocator statistics.
func (m *Map[K, V]) Metrics() arena.ArenaMetrics {
	return m.alloc.Metrics()
}

func (m *Map[K, V]) find(k K) arena.Handle {
	h := m.root
	for !h.IsZero() {
		n := m.node(h)
		switch c := cmp.Compare(k, n.pair.Key); {
		case c < 0:
			h = n.left
		case c > 0:
			h = n.right
		default:
			return h
		}
	}
	return h
}

func (m *Map[K, V]) walk(h arena.Handle, yield func(K, V) bool) bool {
	if h.IsZero() {
		return true
	}
	n := m.node(h)
	return m.walk(n.left, yield) && yield(n.pair.Key, n.pair.Value) && m.walk(n.right, yield)
}

func (m *Map[K, V]) free(h arena.Handle) error {
	if h.IsZero() {
		return nil
	}
	n := m.node(h)
	left, right := n.left, n.right
	err := m.free(left)
	if rerr := m.free(right); err == nil {
		err = rerr
	}
	if derr := m.alloc.Destroy(h); err == nil {
		err = derr
	}
	if derr := m.alloc.Deallocate(h, 1); err == nil {
		err = derr
	}
	return err
}

// node resolves a handle owned by the map.
func (m *Map[K, V]) node(h arena.Handle) *node[K, V] {
	n, err := m.alloc.At(h)
	if err != nil {
		panic("ordmap: corrupted tree: " + err.Error())
	}
	return n
}
