package arena

// Capacity returns the maximum number of elements the arena can hold.
func (a *Arena[T]) Capacity() int {
	return a.capacity
}

// Outstanding returns the number of elements currently allocated.
func (a *Arena[T]) Outstanding() int {
	return a.outstanding
}

// Offset returns the bump cursor of the current cycle, in elements. It is
// never smaller than Outstanding: the difference is storage freed out of
// order and not yet reclaimed.
func (a *Arena[T]) Offset() int {
	return a.offset
}

// Live reports whether the arena currently holds a backing block.
func (a *Arena[T]) Live() bool {
	return a.values != nil
}

// Cycles returns the number of backing blocks acquired over the arena's
// lifetime.
func (a *Arena[T]) Cycles() int {
	return a.cycles
}

// SizeInUse returns the number of bytes handed out in the current cycle,
// including storage freed out of order.
func (a *Arena[T]) SizeInUse() int {
	if a.values == nil {
		return 0
	}
	return a.offset * a.ElemSize()
}

// Utilization returns the ratio of outstanding elements to capacity (0.0 to 1.0).
func (a *Arena[T]) Utilization() float64 {
	return float64(a.outstanding) / float64(a.capacity)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena[T]) Metrics() ArenaMetrics {
	m := ArenaMetrics{
		Capacity:    a.capacity,
		Offset:      a.offset,
		Outstanding: a.outstanding,
		SizeInUse:   a.SizeInUse(),
		Utilization: a.Utilization(),
		Cycles:      a.cycles,
		Live:        a.Live(),
	}
	if m.Live {
		m.BlockBytes = a.BlockBytes()
	}
	return m
}

// ArenaMetrics contains statistical information about an allocator.
type ArenaMetrics struct {
	Capacity    int     // Element capacity
	Offset      int     // Bump cursor, in elements
	Outstanding int     // Elements currently allocated
	BlockBytes  int     // Bytes held in backing storage
	SizeInUse   int     // Bytes handed out
	Utilization float64 // Ratio of outstanding to capacity (0.0-1.0)
	Cycles      int     // Backing blocks acquired so far
	Live        bool    // Whether backing storage is held
}
