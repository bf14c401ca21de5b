package arena

import "github.com/pkg/errors"

var (
	// ErrOutOfCapacity indicates a request larger than the space left in a
	// fixed-capacity arena, either on its own or together with the storage
	// already handed out in the current cycle.
	ErrOutOfCapacity = errors.New("arena: out of capacity")

	// ErrAllocationFailure indicates the block source refused to supply the
	// arena's backing block.
	ErrAllocationFailure = errors.New("arena: backing block allocation failed")

	// ErrUseAfterRelease indicates a handle that does not designate live
	// storage: the zero handle, a handle from a drained cycle, or one outside
	// the allocated region.
	ErrUseAfterRelease = errors.New("arena: handle refers to released storage")

	// ErrDoubleRelease indicates storage returned more than once.
	ErrDoubleRelease = errors.New("arena: storage released twice")

	// ErrInvalidCount indicates a non-positive element count.
	ErrInvalidCount = errors.New("arena: element count must be positive")
)
