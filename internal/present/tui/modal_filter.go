package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

// filterModal asks for a fuzzy title query.
type filterModal struct {
	input  textinput.Model
	width  int
	height int
	padX   int
	padY   int
	box    lipglossv2.Style
}

func newFilterModal(value string, termW, termH int) *filterModal {
	ti := textinput.New()
	ti.Prompt = "title: "
	ti.Placeholder = "getting started"
	ti.SetValue(value)
	m := &filterModal{input: ti, padX: 2, padY: 1}
	m.resizeForTerm(termW, termH)
	return m
}

func (m *filterModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	w := int(float64(termW) * 0.5)
	if termW < 80 {
		w = termW - 4
	}
	w = min(max(w, 36), 80)
	h := 7
	m.width, m.height = w, h
	m.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(m.padY, m.padX).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))

	innerW := w - 2 - m.padX*2
	m.input.Width = max(12, innerW-lipgloss.Width(m.input.Prompt))
}

func (m *filterModal) focus() tea.Cmd { return m.input.Focus() }

func (m *filterModal) value() string { return strings.TrimSpace(m.input.Value()) }

func (m *filterModal) update(msg tea.Msg) (*filterModal, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+x" {
		m.input.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *filterModal) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("Filter articles")
	help := lipgloss.NewStyle().Faint(true).Render("enter=apply • esc=cancel • ctrl+x=clear")
	body := strings.Join([]string{header, "", m.input.View(), "", help}, "\n")
	return m.box.Render(body)
}
