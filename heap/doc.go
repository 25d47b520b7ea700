// Package heap implements a first-fit heap allocator over a growable data segment.
//
// # Overview
//
// Every region handed out is preceded in memory by a fixed-size header that
// records the requested size, a free flag, and the address of the next header.
// The headers form a singly linked list in the order they were created, which
// is also address order because the segment only ever grows at its end:
//
//	start                                                        break
//	| header | data ... | header | data ... | header | data ... |
//	  head ------------> next ------------> tail
//
// # Allocation
//
// Alloc(size) scans the list from head and reuses the first free block whose
// recorded size is at least size. Oversized blocks are handed out whole; blocks
// are never split. When nothing fits, the segment grows by HeaderSize plus the
// size rounded up to 16 bytes and a new header is appended at the tail.
//
//	h, err := heap.New(seg, nil)
//	p := h.Alloc(40)   // nil on a zero size or when the segment is exhausted
//	buf := h.Slice(p)  // 40-byte view of the region
//	h.Free(p)
//
// # Release
//
// Free(p) steps back HeaderSize bytes from p to find the header. If the block
// ends exactly at the segment break it is the top of the heap: the segment
// shrinks by the whole block and the block leaves the list. Any other block is
// only marked free. Adjacent free blocks are never coalesced.
//
// Free does not validate p. Passing a pointer that did not come from this heap,
// or freeing the same block twice, is undefined.
//
// # Alignment
//
// HeaderSize is a multiple of 16 and every block occupies HeaderSize plus its
// size rounded up to 16 bytes, so each header and each data region starts on a
// 16-byte boundary as long as the heap start does. New aligns the start.
//
// # Thread Safety
//
// A Heap is safe for concurrent use. A single mutex covers each whole Alloc
// and Free, including the segment call, so operations are totally ordered.
//
// # Cost
//
// Search and tail removal are both O(n) in the number of blocks ever created
// and still live in the list; there are no back-links and no size classes.
//
// # Related Packages
//
//   - github.com/joshuapare/brkalloc/heap/segment: growth primitives
//   - github.com/joshuapare/brkalloc/heap/verify: layout invariant checks
//   - github.com/joshuapare/brkalloc/heap/printer: layout and stats rendering
package heap
