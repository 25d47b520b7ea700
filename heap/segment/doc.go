// Package segment provides the heap-growth primitives the heap package builds on.
//
// # Overview
//
// A Segment is a contiguous range of address space with a movable upper bound,
// the break. Sbrk moves the break by a signed delta and returns where it was
// before, the same contract as the classic sbrk(2):
//
//	old, err := seg.Sbrk(64)  // grow by 64 bytes, old is the start of the new bytes
//	cur := seg.Break()        // query without moving
//	_, err = seg.Sbrk(-64)    // give the bytes back
//
// # Implementations
//
// Reserved: a private reservation made once up front.
//
//   - unix: anonymous PROT_NONE mapping, pages become read/write as the break
//     passes them and are dropped with MADV_DONTNEED when it retreats
//   - windows: VirtualAlloc MEM_RESERVE, then MEM_COMMIT / MEM_DECOMMIT per page
//   - elsewhere: a Go byte slice of the full capacity
//
// Growth beyond the reservation fails with ErrExhausted. Several Reserved
// segments can coexist in one process, which is what tests and tools use.
//
// ProcessBreak (linux only): the real process data segment, moved with brk(2).
// There is exactly one per process and nothing else may move it while a heap
// owns it; a cgo libc malloc sharing the process will break that rule.
//
// # Thread Safety
//
// Segments are not safe for concurrent use. The heap package serializes every
// call under its lock.
package segment
