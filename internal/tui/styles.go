package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4500"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#5A56E0"))
	playingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	watchedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8A8A8")).MarginTop(1)
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	feedTabStyle   = lipgloss.NewStyle().Padding(0, 1)
	activeTabStyle = feedTabStyle.Bold(true).Underline(true)
)
