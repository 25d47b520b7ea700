package heap

import (
	"fmt"
	"log/slog"
	"math"
	"unsafe"

	"github.com/joshuapare/brkalloc/internal/format"
)

// All pointer arithmetic on segment memory lives in this file.
//
// Layout of one block, starting on a 16-byte boundary:
//
//	+0           size   requested bytes (uintptr)
//	+ptr         next   address of the next header, 0 for the tail (uintptr)
//	+2*ptr       free   1 when released, 0 when in use (uint32)
//	...          padding up to a multiple of 16
//	+HeaderSize  data   Align16(size) bytes
//
// next is kept as a plain address rather than a Go pointer because headers
// live outside the Go heap and must never be scanned by the collector.

const (
	headerFields = 2*unsafe.Sizeof(uintptr(0)) + unsafe.Sizeof(uint32(0))
	headerPad    = (format.Alignment - headerFields%format.Alignment) % format.Alignment
)

type header struct {
	size uintptr
	next uintptr
	free uint32
	_    [headerPad]byte
}

// HeaderSize is the number of bytes every block spends on its header.
const HeaderSize = unsafe.Sizeof(header{})

// Fails to compile unless HeaderSize is a multiple of the alignment.
var _ = [1]struct{}{}[HeaderSize%format.Alignment]

// headerAt reinterprets addr as a header. addr must be the start of a block
// inside a live segment.
func headerAt(addr uintptr) *header {
	return (*header)(unsafe.Pointer(addr)) //nolint:govet // segment memory, not Go heap
}

// headerOf recovers the header of the data region at p.
// p must have been returned by Alloc on the heap that owns the header and not
// yet released; anything else yields garbage.
func headerOf(p unsafe.Pointer) *header {
	return (*header)(unsafe.Add(p, -int(HeaderSize)))
}

func (h *header) addr() uintptr { return uintptr(unsafe.Pointer(h)) }

// data returns the first byte after the header.
func (h *header) data() unsafe.Pointer { return unsafe.Add(unsafe.Pointer(h), HeaderSize) }

// span is the number of data bytes the block occupies in the segment.
func (h *header) span() uintptr { return format.Align16(h.size) }

// end is the address one past the block's last data byte.
func (h *header) end() uintptr { return h.addr() + HeaderSize + h.span() }

func (h *header) isFree() bool { return h.free != 0 }

func (h *header) nextHeader() *header {
	if h.next == 0 {
		return nil
	}
	return headerAt(h.next)
}

func (h *header) setNext(n *header) {
	if n == nil {
		h.next = 0
		return
	}
	h.next = n.addr()
}

// blockSpan returns the segment bytes a new block of size needs, or false if
// that does not fit in an int delta.
func blockSpan(size uintptr) (uintptr, bool) {
	const maxSize = uintptr(math.MaxInt) - HeaderSize - format.AlignmentMask
	if size > maxSize {
		return 0, false
	}
	return HeaderSize + format.Align16(size), true
}

// hexAddr formats lazily as hex in log output.
type hexAddr uintptr

func (a hexAddr) LogValue() slog.Value { return slog.StringValue(fmt.Sprintf("%#x", uintptr(a))) }
