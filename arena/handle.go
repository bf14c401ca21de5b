package arena

import "fmt"

// Handle designates storage handed out by an Allocator. It replaces a raw
// pointer: an index into the allocator's slots plus the generation the
// storage was created in, so stale handles can be detected.
//
// The zero Handle designates no storage.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h designates no storage.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

// Index returns the slot index of h.
func (h Handle) Index() int {
	return int(h.index)
}

// Offset returns the handle of the i-th element of a multi-element
// allocation starting at h.
func (h Handle) Offset(i int) Handle {
	if h.IsZero() {
		return h
	}
	return Handle{index: h.index + uint32(i), gen: h.gen}
}

func (h Handle) String() string {
	if h.IsZero() {
		return "nil"
	}
	return fmt.Sprintf("%d@%d", h.index, h.gen)
}
