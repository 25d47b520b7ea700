package printer

import (
	"encoding/json"

	"github.com/joshuapare/brkalloc/heap"
)

// jsonLayout represents a heap layout in JSON format.
type jsonLayout struct {
	Start  string      `json:"start"`
	Break  string      `json:"break"`
	Bytes  uintptr     `json:"bytes"`
	Blocks []jsonBlock `json:"blocks"`
}

// jsonBlock represents one block in JSON format.
type jsonBlock struct {
	Header string  `json:"header"`
	Data   string  `json:"data"`
	Size   uintptr `json:"size"`
	Span   uintptr `json:"span"`
	Free   bool    `json:"free"`
}

// jsonStats mirrors heap.Stats with snake_case keys.
type jsonStats struct {
	AllocCalls   uint64 `json:"alloc_calls"`
	ZeroRequests uint64 `json:"zero_requests"`
	Reused       uint64 `json:"reused"`
	Grown        uint64 `json:"grown"`
	Failed       uint64 `json:"failed"`
	FreeCalls    uint64 `json:"free_calls"`
	NilFrees     uint64 `json:"nil_frees"`
	Shrunk       uint64 `json:"shrunk"`
	Marked       uint64 `json:"marked"`
	GrowBytes    uint64 `json:"grow_bytes"`
	ShrinkBytes  uint64 `json:"shrink_bytes"`
	Blocks       int    `json:"blocks"`
	FreeBlocks   int    `json:"free_blocks"`
	InUseBytes   uint64 `json:"in_use_bytes"`
	FreeBytes    uint64 `json:"free_bytes"`
	HeapBytes    uint64 `json:"heap_bytes"`
}

func (p *Printer) printLayoutJSON(l heap.Layout) error {
	out := jsonLayout{
		Start:  p.addr(l, l.Start),
		Break:  p.addr(l, l.Break),
		Bytes:  l.Break - l.Start,
		Blocks: make([]jsonBlock, 0, len(l.Blocks)),
	}
	for _, b := range l.Blocks {
		out.Blocks = append(out.Blocks, jsonBlock{
			Header: p.addr(l, b.Addr),
			Data:   p.addr(l, b.Data),
			Size:   b.Size,
			Span:   b.Span,
			Free:   b.Free,
		})
	}
	return p.encode(out)
}

func (p *Printer) printStatsJSON(s heap.Stats) error {
	return p.encode(jsonStats(s))
}

func (p *Printer) encode(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
