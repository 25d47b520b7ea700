package heap_test

import (
	"fmt"

	"github.com/joshuapare/brkalloc/heap"
	"github.com/joshuapare/brkalloc/heap/segment"
)

func Example() {
	seg, err := segment.Reserve(1 << 16)
	if err != nil {
		panic(err)
	}
	h, err := heap.New(seg, nil)
	if err != nil {
		panic(err)
	}
	defer h.Close()

	p := h.Alloc(40)
	q := h.Alloc(16)
	copy(h.Slice(p), "hello")
	fmt.Println(string(h.Slice(p)[:5]))

	h.Free(p) // not the top block: marked free
	h.Free(q) // top block: the heap shrinks
	fmt.Println(h.Stats().Blocks, h.Stats().FreeBlocks)

	// The freed 40-byte block is the first fit for 24 bytes.
	fmt.Println(h.Alloc(24) == p)
	// Output:
	// hello
	// 1 1
	// true
}
