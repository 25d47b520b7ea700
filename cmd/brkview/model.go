package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/brkalloc/heap"
	"github.com/joshuapare/brkalloc/heap/verify"
)

// Layout constants
const (
	StatsPanelHeight = 9 // Stats lines plus the pane title
	ChromeHeight     = 8 // Header, status bar and pane borders
	refreshInterval  = 200 * time.Millisecond
)

// tickMsg asks the model to take a fresh snapshot.
type tickMsg time.Time

// Model is the main application model
type Model struct {
	heap *heap.Heap
	work *Workload
	keys KeyMap

	layout    heap.Layout
	stats     heap.Stats
	verifyErr error
	snapshots int

	width  int
	height int

	// Help overlay
	showHelp bool

	// Status message for temporary feedback
	statusMessage string
}

// NewModel creates a new TUI model watching h while w runs against it.
func NewModel(h *heap.Heap, w *Workload) Model {
	m := Model{
		heap:   h,
		work:   w,
		keys:   DefaultKeyMap(),
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

// Init schedules the first refresh.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh snapshots the heap and validates the snapshot.
func (m *Model) refresh() {
	m.layout = m.heap.Layout()
	m.stats = m.heap.Stats()
	m.verifyErr = verify.Layout(m.layout)
	m.snapshots++
}

// Close stops the workload. The heap is owned by the caller.
func (m Model) Close() error {
	m.work.Stop()
	return nil
}
