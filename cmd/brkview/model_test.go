package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPauseToggle(t *testing.T) {
	helper := NewTestHelper(t, 2)

	if helper.work.Paused() {
		t.Fatal("workload should run initially")
	}

	helper.SendKeyRune('p')
	if !helper.work.Paused() {
		t.Error("workload should be paused after 'p'")
	}
	if got := helper.GetModel().statusMessage; got != "Paused" {
		t.Errorf("status = %q, want Paused", got)
	}

	helper.SendKeyRune('p')
	if helper.work.Paused() {
		t.Error("workload should resume after second 'p'")
	}
}

func TestStepRequiresPause(t *testing.T) {
	helper := NewTestHelper(t, 1)

	helper.SendKeyRune('s')
	if helper.heap.Stats().AllocCalls != 0 {
		t.Error("step should do nothing while running")
	}
	if got := helper.GetModel().statusMessage; got != "Pause before stepping" {
		t.Errorf("status = %q", got)
	}

	helper.SendKeyRune('p')
	helper.SendKeyRune('s')

	model := helper.GetModel()
	if model.stats.AllocCalls != 1 {
		t.Errorf("AllocCalls = %d after one step, want 1", model.stats.AllocCalls)
	}
	if len(model.layout.Blocks) != 1 {
		t.Errorf("layout has %d blocks after one step, want 1", len(model.layout.Blocks))
	}
	if model.verifyErr != nil {
		t.Errorf("verify: %v", model.verifyErr)
	}
}

func TestStepsKeepHeapValid(t *testing.T) {
	helper := NewTestHelper(t, 3)
	helper.SendKeyRune('p')

	for range 300 {
		helper.SendKeyRune('n')
	}
	helper.Tick()

	model := helper.GetModel()
	if model.verifyErr != nil {
		t.Fatalf("heap invalid after steps: %v", model.verifyErr)
	}
	if got := model.stats.AllocCalls + model.stats.FreeCalls; got != 300 {
		t.Errorf("operations = %d, want 300", got)
	}
	if helper.work.Live() != int(model.stats.Blocks-model.stats.FreeBlocks) {
		t.Errorf("live regions %d != in-use blocks %d", helper.work.Live(), model.stats.Blocks-model.stats.FreeBlocks)
	}
}

func TestHelpToggle(t *testing.T) {
	helper := NewTestHelper(t, 1)
	helper.SendWindowSize(100, 30)

	helper.SendKeyRune('?')
	if !helper.GetModel().showHelp {
		t.Fatal("help should be shown after '?'")
	}
	if !strings.Contains(helper.GetModel().View(), "pause/resume") {
		t.Error("help overlay should list the pause binding")
	}

	// Keys other than help/esc/quit are ignored while help is up.
	helper.SendKeyRune('p')
	if helper.work.Paused() {
		t.Error("'p' should not reach the workload while help is shown")
	}

	helper.SendKey(tea.KeyEsc)
	if helper.GetModel().showHelp {
		t.Error("esc should close help")
	}
}

func TestQuitStopsWorkload(t *testing.T) {
	helper := NewTestHelper(t, 2)
	helper.SendKeyRune('p')
	for range 20 {
		helper.SendKeyRune('s')
	}

	cmd := helper.SendKeyRune('q')
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if helper.work.Live() != 0 {
		t.Errorf("workload still holds %d regions after quit", helper.work.Live())
	}
	if st := helper.heap.Stats(); st.InUseBytes != 0 {
		t.Errorf("in-use bytes = %d after quit", st.InUseBytes)
	}
}

func TestViewRendersBlockMap(t *testing.T) {
	helper := NewTestHelper(t, 1)
	helper.SendWindowSize(60, 30)
	helper.SendKeyRune('p')
	for range 5 {
		helper.SendKeyRune('s')
	}

	view := helper.GetModel().View()
	for _, want := range []string{"brkview", "PAUSED", "Blocks (", "allocations"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

// TestHelpDrawsOverLiveView checks that the help pane sits on top of the
// running view instead of replacing it.
func TestHelpDrawsOverLiveView(t *testing.T) {
	helper := NewTestHelper(t, 1)
	helper.SendWindowSize(100, 40)
	helper.SendKeyRune('p')
	for range 5 {
		helper.SendKeyRune('s')
	}

	model := helper.GetModel()
	mainLines := strings.Split(model.renderMain(), "\n")

	helper.SendKeyRune('?')
	view := helper.GetModel().View()
	lines := strings.Split(view, "\n")

	if len(lines) != len(mainLines) {
		t.Fatalf("overlay has %d lines, live view %d", len(lines), len(mainLines))
	}
	if !strings.Contains(lines[0], "brkview  heap") {
		t.Errorf("header hidden behind help: %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "quit") {
		t.Errorf("status bar hidden behind help: %q", lines[len(lines)-1])
	}
	for _, want := range []string{"brkview help", "pause/resume", "single step"} {
		if !strings.Contains(view, want) {
			t.Errorf("help pane missing %q", want)
		}
	}
}
