package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("252")).
			PaddingLeft(1).
			MarginBottom(1)

	selectedCardStyle = cardStyle.
				BorderLeft(true).
				BorderLeftForeground(lipgloss.Color("57")).
				PaddingLeft(0)

	titleStyle    = lipgloss.NewStyle().Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	bodyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	footerStyle   = lipgloss.NewStyle().Faint(true)
)
