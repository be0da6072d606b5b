package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"

	"github.com/mithrel/kbreader/internal/content"
	"github.com/mithrel/kbreader/internal/present/format"
)

// articleModal is a foreground modal showing one article rendered with
// Glamour inside a scrollable viewport.
type articleModal struct {
	v      content.View
	style  string
	wrap   int
	body   string
	vp     viewport.Model
	width  int
	height int
	padX   int
	padY   int
	box    lipglossv2.Style
}

// newArticleModal wraps the body at wrap columns, or narrower when the box is.
func newArticleModal(v content.View, style string, wrap, termW, termH int) *articleModal {
	m := &articleModal{v: v, style: style, wrap: wrap, padX: 2, padY: 1}
	m.resizeForTerm(termW, termH)
	return m
}

func (m *articleModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	// 70% width, or nearly full width if terminal is small (<80 cols)
	w := int(float64(termW) * 0.7)
	if termW < 80 {
		w = termW - 4
	}
	if w < 40 {
		w = max(32, termW-2)
	}
	h := int(float64(termH) * 0.8)
	if termH < 20 {
		h = termH - 2
	}
	if h < 10 {
		h = max(8, termH-1)
	}
	m.width, m.height = w, h
	m.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(m.padY, m.padX).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))

	innerW := max(10, w-2-m.padX*2) // borders + padding
	innerH := max(5, h-2-m.padY*2)
	if m.vp.Width == 0 {
		m.vp = viewport.New(innerW, innerH)
	} else {
		m.vp.Width = innerW
		m.vp.Height = innerH
	}
	// Glamour wraps at render time, so a resize re-renders.
	wrap := innerW
	if m.wrap > 0 {
		wrap = min(innerW, m.wrap)
	}
	m.render(wrap)
}

func (m *articleModal) render(wrap int) {
	out, err := format.RenderMarkdown(format.ArticleMarkdown(m.v), m.style, wrap)
	if err != nil {
		out = plainArticle(m.v)
	}
	m.body = out
	m.vp.SetContent(out)
}

func plainArticle(v content.View) string {
	s := v.Title + "\n"
	if v.Category != "" {
		s += v.Category + "\n"
	}
	for _, p := range v.Paragraphs {
		s += "\n" + p
	}
	return s
}

func (m *articleModal) update(msg tea.Msg) (*articleModal, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *articleModal) View() string { return m.box.Render(m.vp.View()) }
