package verify

import (
	"fmt"

	"github.com/joshuapare/brkalloc/heap"
	"github.com/joshuapare/brkalloc/internal/format"
)

// ValidationError describes the first broken invariant found.
type ValidationError struct {
	Type    string
	Message string
	Index   int // block index in list order, -1 when not tied to a block
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s at block %d: %s", e.Type, e.Index, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Heap snapshots h and validates the result.
func Heap(h *heap.Heap) error {
	return Layout(h.Layout())
}

// Layout validates every invariant in one call and returns the first failure.
func Layout(l heap.Layout) error {
	if err := Bounds(l); err != nil {
		return err
	}
	if err := Chain(l); err != nil {
		return err
	}
	if err := Tiling(l); err != nil {
		return err
	}
	return Occupancy(l)
}

// Bounds checks the segment bounds themselves.
func Bounds(l heap.Layout) error {
	if l.Break < l.Start {
		return &ValidationError{
			Type:    "Bounds",
			Message: fmt.Sprintf("break %#x below start %#x", l.Break, l.Start),
			Index:   -1,
		}
	}
	if !format.IsAligned16(l.Start) {
		return &ValidationError{
			Type:    "Bounds",
			Message: fmt.Sprintf("start %#x is not 16-byte aligned", l.Start),
			Index:   -1,
		}
	}
	return nil
}

// Chain checks the list ends and address ordering.
func Chain(l heap.Layout) error {
	if len(l.Blocks) == 0 {
		if l.Head != 0 || l.Tail != 0 {
			return &ValidationError{
				Type:    "Chain",
				Message: "empty list with non-nil head or tail",
				Index:   -1,
				Details: map[string]any{"head": l.Head, "tail": l.Tail},
			}
		}
		return nil
	}

	if first := l.Blocks[0].Addr; l.Head != first {
		return &ValidationError{
			Type:    "Chain",
			Message: fmt.Sprintf("head %#x is not the first block %#x", l.Head, first),
			Index:   0,
		}
	}
	last := len(l.Blocks) - 1
	if l.Tail != l.Blocks[last].Addr {
		return &ValidationError{
			Type:    "Chain",
			Message: fmt.Sprintf("tail %#x is not the last reachable block %#x", l.Tail, l.Blocks[last].Addr),
			Index:   last,
		}
	}
	for i, b := range l.Blocks {
		if i > 0 && b.Addr <= l.Blocks[i-1].Addr {
			return &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("address %#x does not increase past %#x (cycle or duplicate)", b.Addr, l.Blocks[i-1].Addr),
				Index:   i,
			}
		}
		if !format.IsAligned16(b.Addr) || !format.IsAligned16(b.Data) {
			return &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("header %#x or data %#x not 16-byte aligned", b.Addr, b.Data),
				Index:   i,
			}
		}
		if b.Data != b.Addr+heap.HeaderSize {
			return &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("data %#x is not %d bytes past header %#x", b.Data, heap.HeaderSize, b.Addr),
				Index:   i,
			}
		}
		if b.Span != format.Align16(b.Size) {
			return &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("span %d does not match size %d", b.Span, b.Size),
				Index:   i,
			}
		}
	}

	if (l.Head == l.Tail) != (len(l.Blocks) == 1) {
		return &ValidationError{
			Type:    "Chain",
			Message: fmt.Sprintf("head == tail disagrees with %d blocks", len(l.Blocks)),
			Index:   -1,
		}
	}
	return nil
}

// Tiling checks that blocks cover [Start, Break) exactly, in order.
func Tiling(l heap.Layout) error {
	next := l.Start
	for i, b := range l.Blocks {
		if b.Addr != next {
			return &ValidationError{
				Type:    "Tiling",
				Message: fmt.Sprintf("block at %#x, expected %#x", b.Addr, next),
				Index:   i,
				Details: map[string]any{"gap": int64(b.Addr) - int64(next)},
			}
		}
		next = b.End()
	}
	if next != l.Break {
		return &ValidationError{
			Type:    "Tiling",
			Message: fmt.Sprintf("blocks end at %#x but break is %#x", next, l.Break),
			Index:   -1,
		}
	}
	return nil
}

// Occupancy checks that in-use blocks fit inside the heap.
func Occupancy(l heap.Layout) error {
	size := uint64(l.Break - l.Start)
	var used uint64
	for _, b := range l.Blocks {
		if !b.Free {
			used += uint64(heap.HeaderSize + b.Span)
		}
	}
	if used > size {
		return &ValidationError{
			Type:    "Occupancy",
			Message: fmt.Sprintf("in-use blocks hold %d bytes, heap is %d", used, size),
			Index:   -1,
			Details: map[string]any{"used": used, "heap": size},
		}
	}
	return nil
}
