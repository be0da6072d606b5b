package tui

import (
	"github.com/charmbracelet/lipgloss/v2"
)

// modal is a foreground box drawn over the card list.
type modal interface {
	View() string
	size() (w, h int)
}

func (m *articleModal) size() (int, int) { return m.width, m.height }
func (m *filterModal) size() (int, int)  { return m.width, m.height }

// activeModal returns the open modal, if any. The filter wins because it
// can only be opened from the list.
func (m model) activeModal() modal {
	switch {
	case m.search != nil:
		return m.search
	case m.article != nil:
		return m.article
	}
	return nil
}

// overlay centers fg on a termW x termH canvas above a faint base.
func overlay(base string, fg modal, termW, termH int) string {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	w, h := fg.size()
	canvas := lipgloss.NewCanvas(
		lipgloss.NewLayer(lipgloss.NewStyle().Faint(true).Render(base)).Width(termW).Height(termH),
		lipgloss.NewLayer(fg.View()).Width(w).Height(h).X(max(0, (termW-w)/2)).Y(max(0, (termH-h)/2)),
	)
	return canvas.Render()
}
