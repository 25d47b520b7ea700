// Package printer renders heap layouts and statistics as text or JSON.
package printer

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/brkalloc/heap"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs an aligned human-readable table.
	FormatText Format = "text"

	// FormatJSON outputs one JSON document per call.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// Relative prints block addresses as offsets from the heap start, which
	// keeps output stable between runs.
	// Default: true
	Relative bool

	// Language selects digit grouping for byte counts in text output.
	// Default: language.English
	Language language.Tag
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:   FormatText,
		Relative: true,
		Language: language.English,
	}
}

// Printer writes heap snapshots to a writer.
type Printer struct {
	opts   Options
	writer io.Writer
	num    *message.Printer
}

// New creates a new Printer.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintLayout(h.Layout())
func New(w io.Writer, opts Options) *Printer {
	return &Printer{
		opts:   opts,
		writer: w,
		num:    message.NewPrinter(opts.Language),
	}
}

// PrintLayout prints every block of l in list order.
func (p *Printer) PrintLayout(l heap.Layout) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printLayoutJSON(l)
	case FormatText:
		return p.printLayoutText(l)
	default:
		return p.printLayoutText(l)
	}
}

// PrintStats prints the counters and occupancy in s.
func (p *Printer) PrintStats(s heap.Stats) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printStatsJSON(s)
	case FormatText:
		return p.printStatsText(s)
	default:
		return p.printStatsText(s)
	}
}

// addr renders an address according to Options.Relative.
func (p *Printer) addr(l heap.Layout, a uintptr) string {
	if p.opts.Relative {
		return fmt.Sprintf("+%#x", a-l.Start)
	}
	return fmt.Sprintf("%#x", a)
}

// Fprint is shorthand for New(w, opts).PrintLayout(l).
func Fprint(w io.Writer, l heap.Layout, opts Options) error {
	return New(w, opts).PrintLayout(l)
}

// FprintStats is shorthand for New(w, opts).PrintStats(s).
func FprintStats(w io.Writer, s heap.Stats, opts Options) error {
	return New(w, opts).PrintStats(s)
}
