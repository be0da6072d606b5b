package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/mithrel/kbreader/internal/content"
	"github.com/mithrel/kbreader/internal/feed"
	"github.com/mithrel/kbreader/internal/present/format"
	"github.com/mithrel/kbreader/internal/util"
)

// Options configures the reader screen.
type Options struct {
	Fetcher  feed.Fetcher
	Log      *logrus.Logger
	Style    string
	WordWrap int
	Filter   string
}

// Run opens the reader screen and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	m := newModel(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	// Anything still in flight belongs to a screen that no longer exists.
	m.screen.Deactivate()
	return err
}

type model struct {
	ctx    context.Context
	opts   Options
	screen *feed.Screen

	spinner spinner.Model
	vp      viewport.Model

	views   []content.View
	visible []int // indices into views after filtering
	cursor  int   // index into visible
	offsets []int // first viewport line of each visible card
	heights []int

	filter       string
	lastDigest   string
	status       string
	lastDuration time.Duration
	width        int
	height       int

	article *articleModal
	search  *filterModal
}

func newModel(ctx context.Context, opts Options) model {
	if opts.Style == "" {
		opts.Style = "dracula"
	}
	if opts.WordWrap <= 0 {
		opts.WordWrap = 80
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := model{
		ctx:     ctx,
		opts:    opts,
		screen:  feed.NewScreen(),
		spinner: sp,
		vp:      viewport.New(80, 20),
		filter:  opts.Filter,
		width:   80,
		height:  24,
	}
	m.applyLayout()
	return m
}

// startLoad activates a new generation and returns the command that fetches it.
func (m *model) startLoad() tea.Cmd {
	act := m.screen.Activate(m.ctx)
	return loadCmd(act, m.opts.Fetcher, m.opts.Log)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startLoad())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		prev := m.lastDigest
		if !m.screen.Settle(msg.outcome) {
			m.opts.Log.WithField("gen", msg.outcome.Gen).Debug("tui: discarded stale load")
			return m, nil
		}
		m.lastDuration = msg.outcome.Dur
		m.lastDigest = m.screen.Digest
		m.views = content.BuildViews(m.screen.Articles)
		if prev != "" && prev == m.lastDigest {
			m.status = "unchanged"
		} else {
			m.status = "loaded"
		}
		m.applyFilter()
		return m, nil
	case spinner.TickMsg:
		if !m.screen.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		if m.article != nil {
			m.article.resizeForTerm(msg.Width, msg.Height)
		}
		if m.search != nil {
			m.search.resizeForTerm(msg.Width, msg.Height)
		}
		return m, nil
	case tea.KeyMsg:
		if m.search != nil {
			return m.updateSearch(msg)
		}
		if m.article != nil {
			return m.updateArticle(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c", "ctrl+q":
		return m, tea.Quit
	case "r":
		m.status = "reloading…"
		return m, tea.Batch(m.spinner.Tick, m.startLoad())
	}
	if m.screen.Loading {
		return m, nil
	}
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.moveCursor(-len(m.visible))
	case "G", "end":
		m.moveCursor(len(m.visible))
	case "enter":
		if v, ok := m.selected(); ok {
			m.article = newArticleModal(v, m.opts.Style, m.opts.WordWrap, m.width, m.height)
		}
	case "/":
		m.search = newFilterModal(m.filter, m.width, m.height)
		return m, m.search.focus()
	default:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateArticle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "enter", "ctrl+q":
		m.article = nil
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.article, cmd = m.article.update(msg)
	return m, cmd
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filter = m.search.value()
		m.search = nil
		m.cursor = 0
		m.applyFilter()
		return m, nil
	case "esc", "ctrl+q":
		m.search = nil
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.update(msg)
	return m, cmd
}

func (m *model) selected() (content.View, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return content.View{}, false
	}
	return m.views[m.visible[m.cursor]], true
}

func (m *model) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	m.refreshCards()
}

func (m *model) applyFilter() {
	titles := make([]string, len(m.views))
	for i, v := range m.views {
		titles[i] = v.Title
	}
	m.visible = util.MatchIndices(m.filter, titles)
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
	m.refreshCards()
}

func (m *model) applyLayout() {
	w, h := m.width, m.height
	if w <= 0 || h <= 0 {
		w, h = 80, 24
	}
	m.vp.Width = w
	// header (1 line + margin) and footer (1 line)
	m.vp.Height = max(3, h-3)
	m.refreshCards()
}

// refreshCards re-renders the visible cards into the viewport and scrolls
// so the selected card is fully on screen when it fits.
func (m *model) refreshCards() {
	cards := make([]string, 0, len(m.visible))
	m.offsets = m.offsets[:0]
	m.heights = m.heights[:0]
	line := 0
	for i, idx := range m.visible {
		card := renderCard(m.views[idx], m.vp.Width, i == m.cursor)
		h := lipgloss.Height(card)
		m.offsets = append(m.offsets, line)
		m.heights = append(m.heights, h)
		line += h
		cards = append(cards, card)
	}
	m.vp.SetContent(strings.Join(cards, "\n"))
	m.ensureVisible()
}

func (m *model) ensureVisible() {
	if m.cursor < 0 || m.cursor >= len(m.offsets) {
		m.vp.GotoTop()
		return
	}
	start := m.offsets[m.cursor]
	end := start + m.heights[m.cursor]
	switch {
	case start < m.vp.YOffset:
		m.vp.SetYOffset(start)
	case end > m.vp.YOffset+m.vp.Height:
		m.vp.SetYOffset(max(start, end-m.vp.Height))
	}
}

func renderCard(v content.View, width int, selected bool) string {
	lines := []string{titleStyle.Render(v.Title)}
	if v.Category != "" {
		lines = append(lines, categoryStyle.Render(v.Category))
	}
	for _, p := range v.Paragraphs {
		lines = append(lines, bodyStyle.Render(p))
	}
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	return style.Width(max(10, width-2)).Render(strings.Join(lines, "\n"))
}

func (m model) renderFooter() string {
	left := "↑/↓ navigate • enter=open • /=filter • r=reload • q=exit"

	var right string
	if m.status != "" {
		if d := m.lastDuration.Round(time.Millisecond); d > 0 {
			right = fmt.Sprintf("%s (%s) • ", m.status, d)
		} else {
			right = m.status + " • "
		}
	}
	if m.filter != "" {
		right += fmt.Sprintf("filter %q • %d/%d articles ", m.filter, len(m.visible), len(m.views))
	} else {
		right += fmt.Sprintf("%d articles ", len(m.views))
	}

	space := m.vp.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		space = 1
	}
	return footerStyle.Render(left + strings.Repeat(" ", space) + right)
}

func (m model) View() string {
	if m.screen.Loading {
		return lipgloss.Place(max(m.width, 1), max(m.height, 1), lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading articles…")
	}

	header := headerStyle.Render(format.Header)
	body := m.vp.View()
	if len(m.visible) == 0 {
		body = lipgloss.NewStyle().Height(m.vp.Height).Render("(no articles)")
	}
	base := header + "\n" + body + "\n" + m.renderFooter()

	if fg := m.activeModal(); fg != nil {
		return overlay(base, fg, m.width, m.height)
	}
	return base
}
