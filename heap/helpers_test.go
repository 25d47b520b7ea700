package heap

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brkalloc/heap/segment"
)

const testCapacity = 1 << 20

// newTestHeap creates a heap over a fresh reservation that is released when
// the test ends.
func newTestHeap(t testing.TB, capacity int) (*Heap, *segment.Reserved) {
	t.Helper()
	seg, err := segment.Reserve(capacity)
	require.NoError(t, err)
	h, err := New(seg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, h.Close()) })
	return h, seg
}

var errInjected = errors.New("injected failure")

// faultySegment wraps a real segment and fails growth or shrink on demand.
type faultySegment struct {
	segment.Segment
	failGrow   bool
	failShrink bool
	calls      []int
}

func (f *faultySegment) Sbrk(delta int) (uintptr, error) {
	f.calls = append(f.calls, delta)
	if (delta > 0 && f.failGrow) || (delta < 0 && f.failShrink) {
		return 0, errInjected
	}
	return f.Segment.Sbrk(delta)
}

func newFaultyHeap(t testing.TB) (*Heap, *faultySegment) {
	t.Helper()
	seg, err := segment.Reserve(testCapacity)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, seg.Close()) })

	f := &faultySegment{Segment: seg}
	h, err := New(f, nil)
	require.NoError(t, err)
	return h, f
}

// mustAlloc allocates and fails the test on nil.
func mustAlloc(t testing.TB, h *Heap, size uintptr) unsafe.Pointer {
	t.Helper()
	p := h.Alloc(size)
	require.NotNil(t, p, "Alloc(%d) returned nil", size)
	return p
}

// blockAt returns the layout entry whose data pointer is p.
func blockAt(t testing.TB, l Layout, p unsafe.Pointer) (Block, bool) {
	t.Helper()
	for _, b := range l.Blocks {
		if b.Data == uintptr(p) {
			return b, true
		}
	}
	return Block{}, false
}
