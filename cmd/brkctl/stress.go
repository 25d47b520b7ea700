package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"time"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/joshuapare/brkalloc/heap"
	"github.com/joshuapare/brkalloc/heap/printer"
	"github.com/joshuapare/brkalloc/heap/verify"
)

var (
	stressWorkers int
	stressOps     int
	stressMaxSize int
	stressSeed    uint64
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressWorkers, "workers", 8, "Concurrent goroutines")
	cmd.Flags().IntVar(&stressOps, "ops", 10000, "Operations per goroutine")
	cmd.Flags().IntVar(&stressMaxSize, "max-size", 512, "Largest allocation in bytes")
	cmd.Flags().Uint64Var(&stressSeed, "seed", 1, "Random seed")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run concurrent allocate/release workers and verify the heap",
		Long: `The stress command starts several goroutines that allocate and release
random sizes on one shared heap. Every region is filled with its owner's id
and checked before release, and the block list is validated at the end.

Example:
  brkctl stress
  brkctl stress --workers 32 --ops 100000 --max-size 4096
  brkctl stress --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
	return cmd
}

// stressConfig is one workload.
type stressConfig struct {
	Workers int
	Ops     int
	MaxSize int
	Seed    uint64
}

func runStress() error {
	if stressWorkers <= 0 || stressOps <= 0 || stressMaxSize <= 0 {
		return fmt.Errorf("--workers, --ops and --max-size must be positive")
	}
	if stressWorkers > 255 {
		return fmt.Errorf("--workers must be at most 255")
	}

	h, err := openHeap()
	if err != nil {
		return fmt.Errorf("open heap: %w", err)
	}
	defer h.Close()

	cfg := stressConfig{Workers: stressWorkers, Ops: stressOps, MaxSize: stressMaxSize, Seed: stressSeed}
	printVerbose("Running %d workers x %d ops\n", cfg.Workers, cfg.Ops)

	began := time.Now()
	if err := stress(h, cfg); err != nil {
		return err
	}
	elapsed := time.Since(began)

	if err := verify.Heap(h); err != nil {
		return fmt.Errorf("heap invalid after stress: %w", err)
	}

	printInfo("%d workers x %d ops in %s, heap verified\n\n", cfg.Workers, cfg.Ops, elapsed.Round(time.Millisecond))
	if quiet {
		return nil
	}
	return printer.FprintStats(os.Stdout, h.Stats(), printerOptions())
}

// stress runs cfg against h and releases everything it allocated. It reports
// the first region whose contents were overwritten by another worker.
func stress(h *heap.Heap, cfg stressConfig) error {
	var wg sync.WaitGroup
	errs := make(chan error, cfg.Workers)

	for w := range cfg.Workers {
		wg.Add(1)
		go func(id byte, r *rand.Rand) {
			defer wg.Done()
			if err := stressWorker(h, id, r, cfg); err != nil {
				errs <- err
			}
		}(byte(w+1), rand.New(rand.NewPCG(cfg.Seed, uint64(w))))
	}
	wg.Wait()
	close(errs)

	return <-errs
}

func stressWorker(h *heap.Heap, id byte, r *rand.Rand, cfg stressConfig) error {
	var live []unsafe.Pointer
	defer func() {
		for _, p := range live {
			h.Free(p)
		}
	}()

	for range cfg.Ops {
		if len(live) > 0 && r.IntN(2) == 0 {
			i := r.IntN(len(live))
			p := live[i]
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]

			for j, b := range h.Slice(p) {
				if b != id {
					return fmt.Errorf("worker %d: byte %d of %#x owned by worker %d", id, j, uintptr(p), b)
				}
			}
			h.Free(p)
			continue
		}

		p := h.Alloc(uintptr(1 + r.IntN(cfg.MaxSize)))
		if p == nil {
			continue
		}
		buf := h.Slice(p)
		for j := range buf {
			buf[j] = id
		}
		live = append(live, p)
	}
	return nil
}
