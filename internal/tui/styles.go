package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	filterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	rowStyle      = lipgloss.NewStyle()
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
