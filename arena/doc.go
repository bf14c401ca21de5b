// Package arena implements a fixed-capacity bump allocator (memory arena)
// and the allocator capability generic containers are built on.
//
// # Overview
//
// An Arena reserves a single block sized for a fixed number of elements
// and hands it out sequentially. The block is created lazily on the first
// allocation and released as soon as every allocation has been returned;
// the next allocation then starts a fresh cycle. Storage freed out of
// order is not reused within a cycle, which keeps allocation O(1).
//
// # Basic Usage
//
//	a := arena.NewBounded[int](10) // room for 10 ints
//
//	h, err := a.Allocate(1)
//	if err != nil {
//		return err // arena.ErrOutOfCapacity once all 10 are handed out
//	}
//	_ = a.Construct(h, 42)
//	p, _ := a.At(h)
//	fmt.Println(*p)
//
//	_ = a.Destroy(h)
//	_ = a.Deallocate(h, 1) // block released: nothing outstanding
//
// # Handles
//
// Storage is designated by a Handle (slot index plus generation) instead
// of a raw pointer. Every operation validates its handle, so use of
// released storage fails with ErrUseAfterRelease and a second release
// fails with ErrDoubleRelease instead of corrupting the arena.
//
// # Rebinding
//
// Containers are handed an allocator for their value type but store their
// own node type. Rebind derives an allocator for another element type from
// an allocator's Policy: same capacity, same block source, independent
// storage.
//
//	values := arena.NewBounded[int](10)
//	nodes := arena.Rebind[node](values) // a separate arena of 10 nodes
//
// # Thread Safety
//
// Arena, Bounded and Heap are not thread-safe. For concurrent access wrap
// any allocator with Synchronize:
//
//	a := arena.Synchronize[int](arena.NewHeap[int]())
//
// # Metrics and Monitoring
//
// Every allocator reports statistics:
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Outstanding: %d of %d\n", m.Outstanding, m.Capacity)
package arena
