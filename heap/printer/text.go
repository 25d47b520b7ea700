package printer

import (
	"fmt"
	"text/tabwriter"

	"github.com/joshuapare/brkalloc/heap"
)

func (p *Printer) printLayoutText(l heap.Layout) error {
	free := 0
	for _, b := range l.Blocks {
		if b.Free {
			free++
		}
	}
	bounds := fmt.Sprintf("%#x-%#x", l.Start, l.Break)
	if _, err := p.num.Fprintf(p.writer, "heap %s: %d bytes, %d blocks (%d free)\n",
		bounds, l.Break-l.Start, len(l.Blocks), free); err != nil {
		return err
	}
	if len(l.Blocks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\theader\tdata\tsize\tspan\tstate\t")
	for i, b := range l.Blocks {
		state := "in-use"
		if b.Free {
			state = "free"
		}
		p.num.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\t\n",
			i, p.addr(l, b.Addr), p.addr(l, b.Data), b.Size, b.Span, state)
	}
	return tw.Flush()
}

func (p *Printer) printStatsText(s heap.Stats) error {
	_, err := p.num.Fprintf(p.writer,
		"allocations  %d (reused %d, grown %d, failed %d, zero-size %d)\n"+
			"releases     %d (shrunk %d, marked free %d, nil %d)\n"+
			"growth       +%d / -%d bytes\n"+
			"blocks       %d (%d free)\n"+
			"in use       %d bytes\n"+
			"free         %d bytes\n"+
			"heap         %d bytes\n",
		s.AllocCalls, s.Reused, s.Grown, s.Failed, s.ZeroRequests,
		s.FreeCalls, s.Shrunk, s.Marked, s.NilFrees,
		s.GrowBytes, s.ShrinkBytes,
		s.Blocks, s.FreeBlocks,
		s.InUseBytes,
		s.FreeBytes,
		s.HeapBytes,
	)
	return err
}
