package heap

import (
	"unsafe"
)

// Free returns the region at p to the heap. A nil p is a no-op.
//
// If the region is the top of the heap, meaning its block ends exactly at the
// segment break, the segment shrinks by the whole block and the block leaves
// the list. Otherwise the block is only marked free for a later Alloc.
//
// p must have been returned by Alloc on h and not freed since. This is not
// checked.
func (h *Heap) Free(p unsafe.Pointer) {
	if p == nil {
		h.nilFrees.Add(1)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.stats.freeCalls++
	hdr := headerOf(p)
	span := hdr.span()

	if uintptr(p)+span == h.seg.Break() {
		total := HeaderSize + span
		h.debug("releasing top block", "size", hdr.size, "shrink", total, "data", hexAddr(uintptr(p)))

		// hdr may be unmapped once the segment shrinks, so nothing reads it
		// after this point.
		if _, err := h.seg.Sbrk(-int(total)); err != nil {
			hdr.free = 1
			h.stats.marked++
			h.log.Error("heap shrink failed, block kept as free", "size", hdr.size, "error", err)
			return
		}
		h.popTail()

		h.stats.shrunk++
		h.stats.shrinkBytes += uint64(total)
		return
	}

	hdr.free = 1
	h.stats.marked++
	h.debug("marked block free", "size", hdr.size, "data", hexAddr(uintptr(p)))
}
