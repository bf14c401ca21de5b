package arena

import (
	"sync"

	"github.com/pkg/errors"
)

// BlockSource supplies the memory budget for arena backing blocks. An arena
// calls Acquire once per cycle, before it creates its block, and Release
// with the same size when the block is dropped.
type BlockSource interface {
	Acquire(size int) error
	Release(size int)
}

type unlimited struct{}

func (unlimited) Acquire(int) error { return nil }
func (unlimited) Release(int)       {}

// Unlimited is a BlockSource that never refuses a block.
var Unlimited BlockSource = unlimited{}

// Budget is a BlockSource with a fixed byte limit shared by every arena
// built on it. It is safe for concurrent use, so allocators rebound from
// one policy may share it across goroutines.
type Budget struct {
	mu    sync.Mutex
	limit int
	used  int
}

// NewBudget creates a Budget that hands out at most limit bytes at a time.
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

// Acquire reserves size bytes, or fails if that would exceed the limit.
func (b *Budget) Acquire(size int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if size < 0 || b.used+size > b.limit {
		return errors.Errorf("budget: %d bytes requested, %d of %d in use", size, b.used, b.limit)
	}
	b.used += size
	return nil
}

// Release returns size bytes to the budget.
func (b *Budget) Release(size int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.used = max(b.used-size, 0)
}

// InUse returns the number of bytes currently reserved.
func (b *Budget) InUse() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

// Limit returns the byte limit.
func (b *Budget) Limit() int {
	return b.limit
}
