package heap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/joshuapare/brkalloc/heap/segment"
	"github.com/joshuapare/brkalloc/internal/format"
)

// Heap is a first-fit allocator over a single Segment.
// The zero value is not usable; create one with New.
type Heap struct {
	mu  sync.Mutex
	seg segment.Segment
	log *slog.Logger

	// start is the 16-byte aligned break the heap began at.
	start uintptr

	head *header
	tail *header

	stats counters

	// Requests that never take the lock.
	zeroRequests atomic.Uint64
	nilFrees     atomic.Uint64
}

// counters are guarded by mu.
type counters struct {
	allocCalls  uint64
	reused      uint64
	grown       uint64
	failed      uint64
	freeCalls   uint64
	shrunk      uint64
	marked      uint64
	growBytes   uint64
	shrinkBytes uint64
}

// New creates an empty heap that owns seg from its current break upwards.
// If the break is not 16-byte aligned it is first advanced to the next
// boundary. opts may be nil.
//
// seg must not be moved by anything else for the lifetime of the heap: the
// top-of-heap check in Free relies on the break only changing here.
func New(seg segment.Segment, opts *Options) (*Heap, error) {
	if seg == nil {
		return nil, ErrNilSegment
	}

	start := seg.Break()
	if pad := format.Align16(start) - start; pad != 0 {
		if _, err := seg.Sbrk(int(pad)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAlignStart, err)
		}
		start += pad
	}

	h := &Heap{
		seg:   seg,
		log:   opts.logger(),
		start: start,
	}
	h.log.Debug("heap created", "start", hexAddr(start), "header_size", HeaderSize)
	return h, nil
}

// Start returns the address the heap began at.
func (h *Heap) Start() uintptr { return h.start }

// Break returns the current segment break.
func (h *Heap) Break() uintptr {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seg.Break()
}

// Close forgets every block and, if the segment implements io.Closer, closes
// it. Pointers returned by Alloc are invalid afterwards.
func (h *Heap) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.head, h.tail = nil, nil
	if c, ok := h.seg.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// debug logs only when the logger would keep the record, so hot paths pay
// nothing for discarded output.
func (h *Heap) debug(msg string, args ...any) {
	if h.log.Enabled(context.Background(), slog.LevelDebug) {
		h.log.Debug(msg, args...)
	}
}
