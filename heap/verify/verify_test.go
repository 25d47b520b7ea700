package verify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brkalloc/heap"
	"github.com/joshuapare/brkalloc/heap/segment"
)

const start = 0x10000

// block builds a layout entry at addr.
func block(addr, size uintptr, free bool) heap.Block {
	span := (size + 15) &^ 15
	return heap.Block{Addr: addr, Data: addr + heap.HeaderSize, Size: size, Span: span, Free: free}
}

// tiled lays sizes out back to back from start.
func tiled(sizes ...uintptr) heap.Layout {
	l := heap.Layout{Start: start, Break: start}
	for _, sz := range sizes {
		b := block(l.Break, sz, false)
		l.Blocks = append(l.Blocks, b)
		l.Break = b.End()
	}
	if len(l.Blocks) > 0 {
		l.Head = l.Blocks[0].Addr
		l.Tail = l.Blocks[len(l.Blocks)-1].Addr
	}
	return l
}

func requireType(t *testing.T, err error, typ string) {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "want *ValidationError, got %T", err)
	require.Equal(t, typ, verr.Type, "error: %v", err)
}

func TestLayout_Valid(t *testing.T) {
	require.NoError(t, Layout(tiled()))
	require.NoError(t, Layout(tiled(40)))
	require.NoError(t, Layout(tiled(40, 10, 20)))
}

func TestBounds(t *testing.T) {
	l := tiled(16)
	l.Break = l.Start - 16
	requireType(t, Bounds(l), "Bounds")

	l = tiled()
	l.Start, l.Break = start+8, start+8
	requireType(t, Bounds(l), "Bounds")
}

func TestChain_EmptyWithHead(t *testing.T) {
	l := tiled()
	l.Head = start
	requireType(t, Chain(l), "Chain")
}

func TestChain_HeadTailMismatch(t *testing.T) {
	l := tiled(16, 16)
	l.Head = l.Blocks[1].Addr
	requireType(t, Chain(l), "Chain")

	l = tiled(16, 16)
	l.Tail = l.Blocks[0].Addr
	requireType(t, Chain(l), "Chain")
}

func TestChain_Cycle(t *testing.T) {
	l := tiled(16, 16)
	// A walk that loops back shows up as a repeated address.
	l.Blocks = append(l.Blocks, l.Blocks[0])
	l.Tail = l.Blocks[0].Addr
	err := Chain(l)
	requireType(t, err, "Chain")
	require.Contains(t, err.Error(), "block 2")
}

func TestChain_Misaligned(t *testing.T) {
	l := tiled(16)
	l.Blocks[0].Data += 8
	requireType(t, Chain(l), "Chain")
}

func TestTiling_Gap(t *testing.T) {
	l := tiled(16, 16)
	l.Blocks[1] = block(l.Blocks[1].Addr+16, 16, false)
	l.Tail = l.Blocks[1].Addr
	l.Break = l.Blocks[1].End()
	requireType(t, Tiling(l), "Tiling")
}

func TestTiling_BreakMismatch(t *testing.T) {
	l := tiled(16)
	l.Break += 16
	requireType(t, Tiling(l), "Tiling")
}

func TestOccupancy(t *testing.T) {
	l := tiled(32, 32)
	require.NoError(t, Occupancy(l))

	l.Break = l.Start + heap.HeaderSize
	requireType(t, Occupancy(l), "Occupancy")
}

func TestHeap_Live(t *testing.T) {
	seg, err := segment.Reserve(1 << 20)
	require.NoError(t, err)
	h, err := heap.New(seg, nil)
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, Heap(h))

	a := h.Alloc(40)
	h.Alloc(10)
	c := h.Alloc(20)
	require.NoError(t, Heap(h))

	h.Free(a)
	h.Free(c)
	require.NoError(t, Heap(h))
}
