package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/brkalloc/heap"
	"github.com/joshuapare/brkalloc/heap/segment"
)

// TestHelper provides utilities for testing TUI components
type TestHelper struct {
	model Model
	heap  *heap.Heap
	work  *Workload
}

// NewTestHelper creates a model over a fresh heap with a workload that is
// never started, so every change comes from the test.
func NewTestHelper(t *testing.T, workers int) *TestHelper {
	t.Helper()
	seg, err := segment.Reserve(1 << 20)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	h, err := heap.New(seg, nil)
	if err != nil {
		t.Fatalf("new heap: %v", err)
	}
	w := NewWorkload(h, workers, 42)
	t.Cleanup(func() {
		w.Stop()
		h.Close()
	})
	return &TestHelper{model: NewModel(h, w), heap: h, work: w}
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) tea.Cmd {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return cmd
}

// SendKey simulates a special key press
func (h *TestHelper) SendKey(keyType tea.KeyType) tea.Cmd {
	updated, cmd := h.model.Update(tea.KeyMsg{Type: keyType})
	h.model = updated.(Model)
	return cmd
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	updated, _ := h.model.Update(tea.WindowSizeMsg{Width: width, Height: height})
	h.model = updated.(Model)
	return h
}

// Tick simulates a refresh timer firing
func (h *TestHelper) Tick() *TestHelper {
	updated, _ := h.model.Update(tickMsg{})
	h.model = updated.(Model)
	return h
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}
