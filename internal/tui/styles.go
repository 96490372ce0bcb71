package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#fab387")
	subtle  = lipgloss.Color("#a6adc8")
	success = lipgloss.Color("#a6e3a1")
	danger  = lipgloss.Color("#f38ba8")

	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475a")).
			Padding(1, 3)

	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#74c7ec")).Bold(true)
	chordStyle = lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(1, 0)
	timerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(subtle)
	okStyle    = lipgloss.NewStyle().Foreground(success)
	errStyle   = lipgloss.NewStyle().Foreground(danger)
)
