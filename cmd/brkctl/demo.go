package main

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/joshuapare/brkalloc/heap"
	"github.com/joshuapare/brkalloc/heap/printer"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the reference allocate/release sequence",
		Long: `The demo command allocates 40, 10 and 20 bytes, releases them in
allocation order, then allocates 30 and 10 bytes again. The first two releases
only mark their blocks free, the third shrinks the heap, and the last two
allocations reuse the first two blocks.

Example:
  brkctl demo
  brkctl demo --verbose
  brkctl demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

// demoOp is one step of the reference sequence. Slot names the pointer the
// step produces or consumes.
type demoOp struct {
	free bool
	size uintptr
	slot int
}

var demoOps = []demoOp{
	{size: 40, slot: 0},
	{size: 10, slot: 1},
	{size: 20, slot: 2},
	{free: true, slot: 0},
	{free: true, slot: 1},
	{free: true, slot: 2},
	{size: 30, slot: 3},
	{size: 10, slot: 4},
}

// demoStep is the JSON record of one executed step.
type demoStep struct {
	Op     string  `json:"op"`
	Size   uintptr `json:"size,omitempty"`
	Slot   int     `json:"slot"`
	Data   string  `json:"data"`
	Break  string  `json:"break"`
	Blocks int     `json:"blocks"`
	Free   int     `json:"free_blocks"`
}

func runDemo() error {
	h, err := openHeap()
	if err != nil {
		return fmt.Errorf("open heap: %w", err)
	}
	defer h.Close()

	steps, err := replayDemo(h, func(step demoStep, l heap.Layout) error {
		if jsonOut || quiet {
			return nil
		}
		label := fmt.Sprintf("alloc(%d)", step.Size)
		if step.Op == "free" {
			label = fmt.Sprintf("free(p%d)", step.Slot)
		}
		printInfo("\n== %s -> p%d at %s\n", label, step.Slot, step.Data)
		return printer.Fprint(os.Stdout, l, printerOptions())
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(steps)
	}
	if !quiet {
		printInfo("\n")
		return printer.FprintStats(os.Stdout, h.Stats(), printerOptions())
	}
	return nil
}

// replayDemo runs demoOps against h, calling after with each step and the
// layout it produced.
func replayDemo(h *heap.Heap, after func(demoStep, heap.Layout) error) ([]demoStep, error) {
	var ptrs [5]unsafe.Pointer
	steps := make([]demoStep, 0, len(demoOps))

	for _, op := range demoOps {
		step := demoStep{Op: "alloc", Size: op.size, Slot: op.slot}
		if op.free {
			step.Op = "free"
			step.Size = 0
			step.Data = offset(h, ptrs[op.slot])
			h.Free(ptrs[op.slot])
		} else {
			ptrs[op.slot] = h.Alloc(op.size)
			if ptrs[op.slot] == nil {
				return steps, fmt.Errorf("alloc(%d) returned nil", op.size)
			}
			step.Data = offset(h, ptrs[op.slot])
		}

		l := h.Layout()
		step.Break = fmt.Sprintf("+%#x", l.Break-l.Start)
		step.Blocks = len(l.Blocks)
		for _, b := range l.Blocks {
			if b.Free {
				step.Free++
			}
		}
		steps = append(steps, step)

		if after != nil {
			if err := after(step, l); err != nil {
				return steps, err
			}
		}
	}
	return steps, nil
}

// offset renders p relative to the heap start.
func offset(h *heap.Heap, p unsafe.Pointer) string {
	return fmt.Sprintf("+%#x", uintptr(p)-h.Start())
}
