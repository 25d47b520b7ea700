package heap

import (
	"log/slog"
	"os"
)

// Runtime allocation logging, controlled by the BRKALLOC_LOG_ALLOC env var.
var logAlloc = os.Getenv("BRKALLOC_LOG_ALLOC") != ""

// Options configures a Heap. A nil *Options uses the defaults.
type Options struct {
	// Logger receives Debug events for every allocation and release, Warn on
	// segment exhaustion and Error when a shrink fails.
	// Default: discard, or a stderr text logger at Debug when
	// BRKALLOC_LOG_ALLOC is set.
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	if logAlloc {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}
