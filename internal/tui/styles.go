package tui

import "github.com/charmbracelet/lipgloss"

// Dashboard palette; the accent is the completed-habit green.
var (
	accentColor = lipgloss.Color("42")
	mutedColor  = lipgloss.Color("240")
	alertColor  = lipgloss.Color("196")
	noticeColor = lipgloss.Color("214")
)

var (
	docStyle = lipgloss.NewStyle().Padding(1, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Padding(0, 1)

	statHeaderStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(noticeColor).
			Italic(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(alertColor).
			Bold(true)
)
