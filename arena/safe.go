package arena

import "sync"

// Synchronized is a mutex-protected wrapper around an Allocator for
// concurrent access. All operations are thread-safe but come with the
// overhead of mutex locking.
//
// Pointers returned by At are not protected: callers sharing an element
// across goroutines must synchronize access to it themselves.
type Synchronized[T any] struct {
	mu sync.Mutex
	a  Allocator[T]
}

// Synchronize wraps a so that every operation holds a single mutex.
// Wrapping an already synchronized allocator returns it unchanged.
func Synchronize[T any](a Allocator[T]) Allocator[T] {
	if s, ok := a.(*Synchronized[T]); ok {
		return s
	}
	return &Synchronized[T]{a: a}
}

// Allocate thread-safely returns storage for n consecutive elements.
func (s *Synchronized[T]) Allocate(n int) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Allocate(n)
}

// Deallocate thread-safely returns storage obtained from Allocate.
func (s *Synchronized[T]) Deallocate(h Handle, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Deallocate(h, n)
}

// Construct thread-safely initializes the element at h.
func (s *Synchronized[T]) Construct(h Handle, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Construct(h, v)
}

// Destroy thread-safely tears down the element at h.
func (s *Synchronized[T]) Destroy(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Destroy(h)
}

// At thread-safely resolves h.
func (s *Synchronized[T]) At(h Handle) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.At(h)
}

// Outstanding thread-safely returns the number of elements allocated.
func (s *Synchronized[T]) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Outstanding()
}

// Metrics thread-safely returns a snapshot of allocator statistics.
func (s *Synchronized[T]) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}

// Policy returns the wrapped allocator's policy, marked synchronized.
func (s *Synchronized[T]) Policy() Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.a.Policy()
	p.Synchronized = true
	return p
}
