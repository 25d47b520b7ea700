package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/brkalloc/heap"
	"github.com/joshuapare/brkalloc/heap/printer"
	"github.com/joshuapare/brkalloc/heap/segment"
)

const (
	segmentReserve = "reserve"
	segmentBrk     = "brk"

	defaultCapacity = 64 << 20
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	capacity    int
	segmentKind string
)

var rootCmd = &cobra.Command{
	Use:   "brkctl",
	Short: "Exercise and inspect a first-fit break allocator",
	Long: `brkctl drives a brkalloc heap: it replays the reference allocation
sequence, runs concurrent stress workloads, and prints block layouts and
allocator statistics.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every allocation and release to stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		IntVar(&capacity, "capacity", defaultCapacity, "Bytes of address space to reserve for the heap")
	rootCmd.PersistentFlags().
		StringVar(&segmentKind, "segment", segmentReserve, "Heap segment: reserve (private mapping) or brk (process break, linux)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openHeap builds a heap over the segment selected by --segment.
func openHeap() (*heap.Heap, error) {
	var seg segment.Segment
	switch segmentKind {
	case segmentReserve:
		r, err := segment.Reserve(capacity)
		if err != nil {
			return nil, err
		}
		seg = r
	case segmentBrk:
		b, err := segment.ProcessBreak()
		if err != nil {
			return nil, err
		}
		seg = b
	default:
		return nil, fmt.Errorf("unknown segment %q (want %s or %s)", segmentKind, segmentReserve, segmentBrk)
	}

	printVerbose("Using %s segment\n", segmentKind)
	return heap.New(seg, &heap.Options{Logger: newLogger()})
}

// newLogger returns a stderr debug logger with --verbose, else a discarding one.
func newLogger() *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}

// printerOptions maps the global flags onto printer options.
func printerOptions() printer.Options {
	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	return opts
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
