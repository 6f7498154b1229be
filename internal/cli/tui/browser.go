// Package tui provides a terminal browser for the trace graph: the same
// caption filter the web UI exposes, applied live while typing, with the
// controller's fade levels mapped to terminal styles.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/traceviz/pkg/graph"
	"github.com/leapstack-labs/traceviz/pkg/view"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	styleMatch   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	styleNear    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleComp    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleEdgeCnt = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Model is the bubbletea model for the graph browser.
type Model struct {
	model      *graph.Model
	controller *view.Controller

	filter    textinput.Model
	viewport  viewport.Model
	ready     bool
	filterErr string
}

// NewModel creates a browser over an already-built graph model.
func NewModel(m *graph.Model) Model {
	ti := textinput.New()
	ti.Placeholder = "filter step captions (regex)"
	ti.Focus()

	return Model{
		model:      m,
		controller: view.NewController(m, nil),
		filter:     ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)

		// An invalid pattern fails the operation and leaves the prior
		// render state in place; we only surface the error.
		if err := m.controller.ApplyFilter(m.filter.Value()); err != nil {
			m.filterErr = err.Error()
		} else {
			m.filterErr = ""
		}
		m.viewport.SetContent(m.renderList())
		return m, cmd

	case tea.WindowSizeMsg:
		headerHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.viewport.SetContent(m.renderList())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := styleTitle.Render("TraceViz") + "  " + m.filter.View()
	if m.filterErr != "" {
		header += "\n" + styleErr.Render(m.filterErr)
	} else {
		header += "\n"
	}
	return header + "\n" + m.viewport.View()
}

// renderList renders visible step nodes grouped by component, with the
// controller's fade levels mapped to styles. Hidden nodes are omitted.
func (m Model) renderList() string {
	st := m.controller.State()
	var b strings.Builder

	for _, c := range m.model.Components {
		if !st.Visible[c.Name] {
			continue
		}
		b.WriteString(styleComp.Render(fmt.Sprintf("▣ %s", c.Name)))
		b.WriteString("\n")

		for _, n := range m.model.StepNodes() {
			if n.Parent != c.Name || !st.Visible[n.ID] {
				continue
			}
			line := fmt.Sprintf("  %-14s %s", n.ID, n.Label)
			if deg := len(m.model.Incident(n.ID)); deg > 0 {
				line += styleEdgeCnt.Render(fmt.Sprintf("  (%d edges)", deg))
			}
			switch st.NodeFade[n.ID] {
			case view.FadeNear:
				b.WriteString(styleNear.Render(line))
			default:
				b.WriteString(styleMatch.Render(line))
			}
			b.WriteString("\n")
		}
	}

	if b.Len() == 0 {
		b.WriteString(styleNear.Render("no steps match"))
	}
	return b.String()
}

// Run starts the browser program and blocks until it exits.
func Run(m *graph.Model) error {
	p := tea.NewProgram(NewModel(m), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
