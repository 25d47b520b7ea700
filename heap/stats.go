package heap

// Stats is a point-in-time snapshot of heap activity and occupancy.
type Stats struct {
	// Call counters since New.
	AllocCalls   uint64 // Alloc calls, zero-size requests included
	ZeroRequests uint64 // Alloc(0) calls
	Reused       uint64 // allocations served from a free block
	Grown        uint64 // allocations that grew the segment
	Failed       uint64 // allocations that returned nil because the segment could not grow
	FreeCalls    uint64 // Free calls, nil pointers included
	NilFrees     uint64 // Free(nil) calls
	Shrunk       uint64 // releases that shrank the segment
	Marked       uint64 // releases that only marked the block free
	GrowBytes    uint64 // total bytes added to the segment
	ShrinkBytes  uint64 // total bytes returned to the segment

	// Occupancy, computed from the list.
	Blocks     int    // blocks in the list
	FreeBlocks int    // blocks marked free
	InUseBytes uint64 // requested bytes of in-use blocks
	FreeBytes  uint64 // requested bytes of free blocks
	HeapBytes  uint64 // break minus start, headers and padding included
}

// Block describes one header and its region.
type Block struct {
	Addr uintptr // header address
	Data uintptr // first byte handed to the caller
	Size uintptr // requested size
	Span uintptr // data bytes occupied, Size rounded up to 16
	Free bool
}

// End returns the address one past the block's last data byte.
func (b Block) End() uintptr { return b.Data + b.Span }

// Layout is a snapshot of the list and the segment bounds.
type Layout struct {
	Start  uintptr
	Break  uintptr
	Head   uintptr // 0 when empty
	Tail   uintptr // 0 when empty
	Blocks []Block // list order
}

// Stats returns a snapshot of the counters and the current occupancy.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	zero := h.zeroRequests.Load()
	nils := h.nilFrees.Load()
	s := Stats{
		AllocCalls:   h.stats.allocCalls + zero,
		ZeroRequests: zero,
		Reused:       h.stats.reused,
		Grown:        h.stats.grown,
		Failed:       h.stats.failed,
		FreeCalls:    h.stats.freeCalls + nils,
		NilFrees:     nils,
		Shrunk:       h.stats.shrunk,
		Marked:       h.stats.marked,
		GrowBytes:    h.stats.growBytes,
		ShrinkBytes:  h.stats.shrinkBytes,
		HeapBytes:    uint64(h.seg.Break() - h.start),
	}
	h.walk(func(b Block) bool {
		s.Blocks++
		if b.Free {
			s.FreeBlocks++
			s.FreeBytes += uint64(b.Size)
		} else {
			s.InUseBytes += uint64(b.Size)
		}
		return true
	})
	return s
}

// Layout returns a snapshot of every block in list order together with the
// segment bounds.
func (h *Heap) Layout() Layout {
	h.mu.Lock()
	defer h.mu.Unlock()

	l := Layout{
		Start: h.start,
		Break: h.seg.Break(),
	}
	if h.head != nil {
		l.Head = h.head.addr()
		l.Tail = h.tail.addr()
	}
	h.walk(func(b Block) bool {
		l.Blocks = append(l.Blocks, b)
		return true
	})
	return l
}

// Walk calls fn for each block in list order until fn returns false.
// The heap is locked for the duration; fn must not call back into h.
func (h *Heap) Walk(fn func(Block) bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.walk(fn)
}

// walk visits the chain. It stops after the first link that does not move to
// a higher address, so a corrupted chain is reported rather than looped on.
func (h *Heap) walk(fn func(Block) bool) {
	var prev uintptr
	for cur := h.head; cur != nil; cur = cur.nextHeader() {
		b := Block{
			Addr: cur.addr(),
			Data: uintptr(cur.data()),
			Size: cur.size,
			Span: cur.span(),
			Free: cur.isFree(),
		}
		if !fn(b) || b.Addr <= prev {
			return
		}
		prev = b.Addr
	}
}
