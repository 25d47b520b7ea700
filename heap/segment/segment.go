package segment

import (
	"errors"
	"fmt"

	"github.com/joshuapare/brkalloc/internal/format"
)

var (
	// ErrExhausted indicates the segment cannot grow by the requested delta.
	ErrExhausted = errors.New("segment: out of memory")

	// ErrUnderflow indicates a shrink below the segment base.
	ErrUnderflow = errors.New("segment: shrink below base")

	// ErrClosed indicates use of a segment after Close.
	ErrClosed = errors.New("segment: closed")

	// ErrBadCapacity indicates a non-positive reservation size.
	ErrBadCapacity = errors.New("segment: capacity must be positive")

	// ErrUnsupported indicates the platform has no process break.
	ErrUnsupported = errors.New("segment: not supported on this platform")
)

// Segment is a contiguous memory range whose upper bound can be moved.
type Segment interface {
	// Sbrk moves the break by delta bytes (negative shrinks) and returns the
	// break as it was before the call. Sbrk(0) is equivalent to Break.
	Sbrk(delta int) (uintptr, error)

	// Break returns the current upper bound of the segment.
	Break() uintptr
}

// Reserved is a Segment over a fixed private reservation.
// Memory between the base and the break is readable and writable; memory
// above it is not guaranteed to be.
type Reserved struct {
	mem  []byte // nil when the platform hands back a bare address
	base uintptr
	page uintptr

	capacity  uintptr
	brk       uintptr // offset of the break from base
	committed uintptr // bytes from base backed by read/write pages
	closed    bool
}

// Reserve reserves capacity bytes of address space, rounded up to whole pages.
// Nothing is committed until the break moves.
func Reserve(capacity int) (*Reserved, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCapacity, capacity)
	}
	page := format.PageSize
	size := format.AlignPage(uintptr(capacity), page)

	r := &Reserved{page: page, capacity: size}
	if err := r.reserve(size); err != nil {
		return nil, fmt.Errorf("segment: reserve %d bytes: %w", size, err)
	}
	return r, nil
}

// Base returns the lowest address of the reservation.
func (r *Reserved) Base() uintptr { return r.base }

// Capacity returns the reservation size in bytes.
func (r *Reserved) Capacity() uintptr { return r.capacity }

// Committed returns how many bytes above the base are currently backed by
// read/write pages. It is always a multiple of the page size.
func (r *Reserved) Committed() uintptr { return r.committed }

// Break returns the current break.
func (r *Reserved) Break() uintptr { return r.base + r.brk }

// Sbrk moves the break by delta bytes and returns the previous break.
// On error the break and the committed pages are unchanged.
func (r *Reserved) Sbrk(delta int) (uintptr, error) {
	if r.closed {
		return 0, ErrClosed
	}
	old := r.base + r.brk

	switch {
	case delta > 0:
		d := uintptr(delta)
		if d > r.capacity-r.brk {
			return 0, fmt.Errorf("%w: need %d bytes, %d left", ErrExhausted, d, r.capacity-r.brk)
		}
		end := r.brk + d
		if end > r.committed {
			want := format.AlignPage(end, r.page)
			if err := r.commit(r.committed, want-r.committed); err != nil {
				return 0, fmt.Errorf("%w: commit: %w", ErrExhausted, err)
			}
			r.committed = want
		}
		r.brk = end

	case delta < 0:
		// -(delta+1)+1 avoids overflowing on math.MinInt.
		d := uintptr(-(delta + 1)) + 1
		if d > r.brk {
			return 0, fmt.Errorf("%w: shrink by %d with %d in use", ErrUnderflow, d, r.brk)
		}
		end := r.brk - d
		keep := format.AlignPage(end, r.page)
		if keep < r.committed {
			if err := r.decommit(keep, r.committed-keep); err != nil {
				return 0, fmt.Errorf("segment: decommit: %w", err)
			}
			r.committed = keep
		}
		r.brk = end
	}

	return old, nil
}

// Close releases the whole reservation. Every pointer into the segment
// becomes invalid. Calling Close twice is a no-op.
func (r *Reserved) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.brk = 0
	r.committed = 0
	return r.release()
}

var _ Segment = (*Reserved)(nil)
