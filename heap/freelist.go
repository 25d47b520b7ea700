package heap

// The free list is every header ever appended and not yet removed by a heap
// shrink, in append order. Despite the name it holds in-use blocks too; the
// free flag on each header decides whether a search may hand it out.
//
// Invariants, all maintained under Heap.mu:
//   - following next from head reaches tail and stops there
//   - header addresses strictly increase along the chain
//   - head == tail iff the list holds zero or one blocks

// firstFit returns the first free block whose recorded size is at least size,
// or nil. Oversized blocks are returned whole.
func (h *Heap) firstFit(size uintptr) *header {
	for cur := h.head; cur != nil; cur = cur.nextHeader() {
		if cur.isFree() && cur.size >= size {
			return cur
		}
	}
	return nil
}

// push appends hdr as the new tail.
func (h *Heap) push(hdr *header) {
	hdr.setNext(nil)
	if h.head == nil {
		h.head = hdr
	}
	if h.tail != nil {
		h.tail.setNext(hdr)
	}
	h.tail = hdr
}

// popTail removes the tail. Without back-links the new tail is found by
// scanning from head.
func (h *Heap) popTail() {
	if h.tail == nil {
		return
	}
	if h.head == h.tail {
		h.head, h.tail = nil, nil
		return
	}
	for cur := h.head; cur != nil; cur = cur.nextHeader() {
		if cur.nextHeader() == h.tail {
			cur.setNext(nil)
			h.tail = cur
			return
		}
	}
}
