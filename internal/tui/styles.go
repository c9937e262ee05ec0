package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/clive/inputkit/internal/theme"
)

// Component styles
var (
	// Header style
	HeaderStyle = lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Bold(true).
			PaddingLeft(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(theme.ColorFgMuted)

	// Form column
	FormStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	// Status bar styles
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(theme.ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	StatusFocusStyle = lipgloss.NewStyle().
				Foreground(theme.ColorGreen).
				Bold(true)

	// Debug panel
	DebugTitleStyle = lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Bold(true)

	DebugPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorYellow).
			Padding(0, 1)

	DebugKindStyles = map[string]lipgloss.Style{
		eventChange: lipgloss.NewStyle().Foreground(theme.ColorCyan),
		eventSelect: lipgloss.NewStyle().Foreground(theme.ColorMagenta),
		eventFocus:  lipgloss.NewStyle().Foreground(theme.ColorBlue),
		eventSubmit: lipgloss.NewStyle().Foreground(theme.ColorGreen),
		eventError:  lipgloss.NewStyle().Foreground(theme.ColorRed),
	}

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Foreground(theme.ColorRed)

	// Success styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(theme.ColorGreen)

	// Dimmed/info style for less important messages
	DimStyle = lipgloss.NewStyle().
			Foreground(theme.ColorFgComment)
)
