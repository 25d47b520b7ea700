package heap

import (
	"unsafe"
)

// Alloc returns a 16-byte aligned region of at least size bytes, or nil when
// size is zero or the segment cannot grow. The region's contents are
// unspecified when a free block is reused; fresh growth is zeroed by the
// segments in this module.
func (h *Heap) Alloc(size uintptr) unsafe.Pointer {
	if size == 0 {
		h.zeroRequests.Add(1)
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.stats.allocCalls++
	h.debug("searching free block", "size", size)

	if hdr := h.firstFit(size); hdr != nil {
		hdr.free = 0
		h.stats.reused++
		h.debug("reusing free block", "size", size, "block_size", hdr.size, "data", hexAddr(uintptr(hdr.data())))
		return hdr.data()
	}

	total, ok := blockSpan(size)
	if !ok {
		h.stats.failed++
		h.log.Warn("allocation too large", "size", size)
		return nil
	}

	old, err := h.seg.Sbrk(int(total))
	if err != nil {
		h.stats.failed++
		h.log.Warn("heap growth failed", "size", size, "grow", total, "error", err)
		return nil
	}

	hdr := headerAt(old)
	hdr.size = size
	hdr.free = 0
	h.push(hdr)

	h.stats.grown++
	h.stats.growBytes += uint64(total)
	h.debug("grew heap", "size", size, "grow", total, "data", hexAddr(uintptr(hdr.data())))
	return hdr.data()
}

// Slice returns a view of the region at p whose length and capacity are the
// size that was requested for it. p must be a live pointer from this heap;
// nil yields nil.
func (h *Heap) Slice(p unsafe.Pointer) []byte {
	if p == nil {
		return nil
	}
	h.mu.Lock()
	size := headerOf(p).size
	h.mu.Unlock()
	return unsafe.Slice((*byte)(p), size)
}
