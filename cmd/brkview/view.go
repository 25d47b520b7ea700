package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/brkalloc/heap/printer"
)

// View renders the UI
func (m Model) View() string {
	if m.showHelp {
		// The live view keeps rendering behind the help pane.
		help := overlay.New(
			&helpPane{keys: m.keys},
			NewMainViewModel(&m),
			overlay.Center,
			overlay.Center,
			0,
			0,
		)
		return help.View()
	}
	return m.renderMain()
}

// renderMain renders everything except the help pane.
func (m Model) renderMain() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderStats(),
		m.renderBlockMap(),
		m.renderStatus(),
	)
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("brkview  heap %#x-%#x", m.layout.Start, m.layout.Break)
	if m.work.Paused() {
		title += "  " + pausedStyle.Render("PAUSED")
	}
	return headerStyle.Render(title)
}

func (m Model) renderStats() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Stats") + "\n")
	if err := printer.FprintStats(&b, m.stats, printer.DefaultOptions()); err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
	}
	fmt.Fprintf(&b, "live regions %d", m.work.Live())
	return paneStyle.Width(m.paneWidth()).Render(b.String())
}

// renderBlockMap draws one glyph per block in list order, wrapped to the
// pane width. Blocks beyond the visible rows are summarized.
func (m Model) renderBlockMap() string {
	width := m.paneWidth() - 2
	rows := m.height - ChromeHeight - StatsPanelHeight - 1
	if width < 1 {
		width = 1
	}
	if rows < 1 {
		rows = 1
	}

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(fmt.Sprintf("Blocks (%d)", len(m.layout.Blocks))) + "\n")

	visible := min(len(m.layout.Blocks), width*rows)
	for i := range visible {
		if i > 0 && i%width == 0 {
			b.WriteByte('\n')
		}
		if m.layout.Blocks[i].Free {
			b.WriteString(freeBlockStyle.Render(freeGlyph))
		} else {
			b.WriteString(usedBlockStyle.Render(usedGlyph))
		}
	}
	if hidden := len(m.layout.Blocks) - visible; hidden > 0 {
		fmt.Fprintf(&b, "\n... %d more", hidden)
	}
	return paneStyle.Width(m.paneWidth()).Render(b.String())
}

func (m Model) renderStatus() string {
	var parts []string
	if m.verifyErr != nil {
		parts = append(parts, errorStyle.Render(m.verifyErr.Error()))
	} else if m.statusMessage != "" {
		parts = append(parts, m.statusMessage)
	}
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+h.Desc)
	}
	return statusStyle.Render(strings.Join(parts, "  "))
}

// helpPane is the foreground of the help overlay.
type helpPane struct {
	keys KeyMap
}

func (p *helpPane) Init() tea.Cmd { return nil }

// Update is a no-op; help keys are handled by Model.
func (p *helpPane) Update(tea.Msg) (tea.Model, tea.Cmd) { return p, nil }

func (p *helpPane) View() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("brkview help") + "\n\n")
	b.WriteString(usedBlockStyle.Render(usedGlyph) + " in-use block   " +
		freeBlockStyle.Render(freeGlyph) + " free block\n\n")
	for _, k := range []key.Binding{p.keys.Pause, p.keys.Step, p.keys.Help, p.keys.Quit} {
		h := k.Help()
		fmt.Fprintf(&b, "%s  %s\n", helpKeyStyle.Width(10).Render(h.Key), helpDescStyle.Render(h.Desc))
	}
	return helpBoxStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

// MainViewModel wraps the live view for use as overlay background
type MainViewModel struct {
	model *Model
}

func NewMainViewModel(m *Model) *MainViewModel {
	return &MainViewModel{model: m}
}

func (v *MainViewModel) Init() tea.Cmd { return nil }

// Update is a no-op; the parent Model handles every message.
func (v *MainViewModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }

func (v *MainViewModel) View() string { return v.model.renderMain() }

func (m Model) paneWidth() int {
	// Border and padding take four columns.
	return max(m.width-4, 20)
}
