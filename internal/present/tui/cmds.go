package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/mithrel/kbreader/internal/feed"
)

// loadedMsg carries the outcome of one activation back to Update.
type loadedMsg struct {
	outcome feed.Outcome
}

// loadCmd runs the fetch for act off the event loop.
func loadCmd(act feed.Activation, f feed.Fetcher, log *logrus.Logger) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{outcome: feed.Load(act.Ctx, f, log, act.Gen)}
	}
}
