package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	// Selected item styling
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// Warning styling
	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB454")).
			Bold(true)

	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	// Help text styling
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// NewHuhTheme returns the form theme used by all interactive flows.
func NewHuhTheme() *huh.Theme {
	theme := huh.ThemeCharm()
	theme.Focused.Title = theme.Focused.Title.Foreground(lipgloss.Color("#7D56F4"))
	theme.Focused.SelectedOption = theme.Focused.SelectedOption.Foreground(lipgloss.Color("#7D56F4"))
	return theme
}
