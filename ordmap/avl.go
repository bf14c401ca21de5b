package ordmap

import (
	"cmp"

	"github.com/pavanmanishd/arenakit/arena"
)

// insert links the already constructed node n with key k into the subtree
// rooted at h and returns the new subtree root. k must not be present.
func (m *Map[K, V]) insert(h, n arena.Handle, k K) arena.Handle {
	if h.IsZero() {
		return n
	}
	p := m.node(h)
	if cmp.Less(k, p.pair.Key) {
		p.left = m.insert(p.left, n, k)
	} else {
		p.right = m.insert(p.right, n, k)
	}
	return m.rebalance(h)
}

func (m *Map[K, V]) height(h arena.Handle) int8 {
	if h.IsZero() {
		return 0
	}
	return m.node(h).height
}

func (m *Map[K, V]) fix(h arena.Handle) {
	p := m.node(h)
	p.height = 1 + max(m.height(p.left), m.height(p.right))
}

func (m *Map[K, V]) rotateRight(h arena.Handle) arena.Handle {
	p := m.node(h)
	l := p.left
	ln := m.node(l)
	p.left = ln.right
	ln.right = h
	m.fix(h)
	m.fix(l)
	return l
}

func (m *Map[K, V]) rotateLeft(h arena.Handle) arena.Handle {
	p := m.node(h)
	r := p.right
	rn := m.node(r)
	p.right = rn.left
	rn.left = h
	m.fix(h)
	m.fix(r)
	return r
}

func (m *Map[K, V]) rebalance(h arena.Handle) arena.Handle {
	m.fix(h)
	p := m.node(h)
	switch balance := m.height(p.left) - m.height(p.right); {
	case balance > 1:
		if l := m.node(p.left); m.height(l.left) < m.height(l.right) {
			p.left = m.rotateLeft(p.left)
		}
		return m.rotateRight(h)
	case balance < -1:
		if r := m.node(p.right); m.height(r.right) < m.height(r.left) {
			p.right = m.rotateRight(p.right)
		}
		return m.rotateLeft(h)
	}
	return h
}
