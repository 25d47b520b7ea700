package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/brkalloc/cmd/brkview/logger"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.refresh()
		if m.verifyErr != nil {
			logger.Error("heap invalid", "error", m.verifyErr)
		}
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.work.Stop()
		return m, tea.Quit
	}

	// Help swallows every other key
	if m.showHelp {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Pause):
		if m.work.TogglePause() {
			m.statusMessage = "Paused"
		} else {
			m.statusMessage = "Resumed"
		}

	case key.Matches(msg, m.keys.Step):
		if !m.work.Paused() {
			m.statusMessage = "Pause before stepping"
			return m, nil
		}
		m.work.Step()
		m.refresh()
		m.statusMessage = "Stepped"
	}
	return m, nil
}
