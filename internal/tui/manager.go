// Package tui provides the interactive plugin manager screen.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alc-ux/plugman/internal/plugins"
	"github.com/alc-ux/plugman/internal/runner"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtitleStyle = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	installedTag  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("installed")
	missingTag    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render("not installed")
	reportStyle   = lipgloss.NewStyle().Faint(true).PaddingLeft(4)
)

// ReloadMsg tells the model the registry contents changed on disk.
type ReloadMsg struct{}

// actionDoneMsg carries the outcome of an install or uninstall.
type actionDoneMsg struct {
	plugin string
	report string
	err    error
}

// Model is the bubbletea model for the plugin manager screen.
type Model struct {
	registry  *plugins.Registry
	lifecycle *plugins.Lifecycle

	items    []*plugins.Descriptor
	cursor   int
	expanded int // index of the expanded entry, -1 for none.
	busy     bool
	report   string
	done     bool
}

// NewModel returns a manager model over the given registry and lifecycle.
func NewModel(registry *plugins.Registry, lifecycle *plugins.Lifecycle) Model {
	return Model{
		registry:  registry,
		lifecycle: lifecycle,
		items:     registry.List(),
		expanded:  -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReloadMsg:
		m.items = m.registry.List()
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		m.expanded = -1

		return m, nil

	case actionDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.report = fmt.Sprintf("%s: %v", msg.plugin, msg.err)
		} else {
			m.report = strings.TrimSpace(msg.report)
		}

		return m, nil

	case tea.KeyMsg:
		if m.busy {
			// A package manager call is in flight; only allow quitting.
			if msg.String() == "ctrl+c" {
				m.done = true
				return m, tea.Quit
			}

			return m, nil
		}

		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.done = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "enter", " ":
		if m.expanded == m.cursor {
			m.expanded = -1
		} else {
			m.expanded = m.cursor
		}

	case "i":
		if d := m.current(); d != nil && !d.Installed() {
			m.busy = true
			m.report = fmt.Sprintf("installing %s ...", d.Package)

			return m, m.runAction(d, m.lifecycle.Install)
		}

	case "r":
		if d := m.current(); d != nil && d.Installed() {
			m.busy = true
			m.report = fmt.Sprintf("removing %s ...", d.Package)

			return m, m.runAction(d, m.lifecycle.Uninstall)
		}

	case "p":
		m.registry.Refresh()
		m.report = "install state refreshed"
	}

	return m, nil
}

func (m Model) current() *plugins.Descriptor {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}

	return m.items[m.cursor]
}

func (m Model) runAction(
	d *plugins.Descriptor,
	action func(*plugins.Descriptor) (runner.Result, error),
) tea.Cmd {
	return func() tea.Msg {
		res, err := action(d)

		return actionDoneMsg{plugin: d.Name, report: res.Report(), err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("ALC AiiDA Plugin Manager"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Manage installation of available AiiDA plugins developed by the ALC."))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString("No plugins configured.\n")
	}

	for i, d := range m.items {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}

		tag := missingTag
		if d.Installed() {
			tag = installedTag
		}

		line := fmt.Sprintf("%s%s (%s) [%s]", marker, d.Name, d.Package, tag)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")

		if i == m.expanded {
			b.WriteString(reportStyle.Render("description: " + d.Description))
			b.WriteString("\n")
			b.WriteString(reportStyle.Render("import name: " + d.ProbeTarget))
			b.WriteString("\n")
		}
	}

	if m.report != "" {
		b.WriteString("\n")
		b.WriteString(reportStyle.Render(m.report))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(
		"up/down: select  enter: details  i: install  r: remove  p: re-probe  q: quit"))
	b.WriteString("\n")

	return b.String()
}
