package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/brkalloc/cmd/brkview/logger"
	"github.com/joshuapare/brkalloc/heap"
	"github.com/joshuapare/brkalloc/heap/segment"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultCapacity = 64 << 20

func main() {
	args := os.Args[1:]
	debugMode := false
	workers := defaultWorkers

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--debug", "-d":
			debugMode = true
		case "--workers", "-w":
			if i+1 >= len(args) {
				printUsage()
				os.Exit(1)
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 1 || n > 255 {
				fmt.Fprintf(os.Stderr, "Error: --workers wants 1-255, got %q\n", args[i])
				os.Exit(1)
			}
			workers = n
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("brkview %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown argument %q\n", arg)
			printUsage()
			os.Exit(1)
		}
	}

	// Initialize logger (must be before any logging calls)
	if _, err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}
	logger.Info("starting brkview", "workers", workers, "debug", debugMode)

	seg, err := segment.Reserve(defaultCapacity)
	if err != nil {
		logger.Error("reserve failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// Allocator debug records go to the same file as the UI's.
	h, err := heap.New(seg, &heap.Options{Logger: logger.L})
	if err != nil {
		seg.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	work := NewWorkload(h, workers, 1)
	work.Start()

	p := tea.NewProgram(NewModel(h, work), tea.WithAltScreen())

	finalModel, err := p.Run()
	if model, ok := finalModel.(Model); ok {
		model.Close()
	} else {
		work.Stop()
	}
	if cerr := h.Close(); cerr != nil {
		logger.Warn("error closing heap", "error", cerr)
	}
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	logger.Info("brkview exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: brkview [options]\n")
	fmt.Fprintf(os.Stderr, "Try 'brkview --help' for more information.\n")
}

func printHelp() {
	fmt.Println("brkview - Live block map of a first-fit break allocator")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  brkview [options]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Runs background workers that allocate and release random sizes on a")
	fmt.Println("  private heap and shows every block, free or in use, as it changes.")
	fmt.Println()
	fmt.Println("  Keys:")
	fmt.Println("    p, space    Pause or resume the workers")
	fmt.Println("    s, n        Run a single operation while paused")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -w, --workers N  Background workers (default 4)")
	fmt.Println("  -d, --debug      Enable debug logging to ~/.brkview/logs/")
	fmt.Println("  -h, --help       Show this help message")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println()
	fmt.Println("For scripted runs, use the 'brkctl' command instead.")
}
