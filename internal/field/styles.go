package field

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/clive/inputkit/internal/theme"
)

// Styles holds every style a field renders with
type Styles struct {
	Label    lipgloss.Style
	Required lipgloss.Style

	// Container per variant; the focused flavour swaps the border color
	Standard lipgloss.Style
	Outlined lipgloss.Style
	Filled   lipgloss.Style
	Focused  lipgloss.Color
	Errored  lipgloss.Color

	Adornment   lipgloss.Style
	Value       lipgloss.Style
	Placeholder lipgloss.Style
	Disabled    lipgloss.Style
	Caret       lipgloss.Style

	// Option list
	List            lipgloss.Style
	Close           lipgloss.Style
	Option          lipgloss.Style
	OptionHighlight lipgloss.Style

	Helper lipgloss.Style
	Error  lipgloss.Style
}

// DefaultStyles returns the One Dark flavoured field styles
func DefaultStyles() Styles {
	return Styles{
		Label: lipgloss.NewStyle().
			Foreground(theme.ColorBlue).
			Bold(true),
		Required: lipgloss.NewStyle().
			Foreground(theme.ColorRed),

		Standard: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(theme.ColorBorder),
		Outlined: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorBorder).
			Padding(0, 1),
		Filled: lipgloss.NewStyle().
			Background(theme.ColorBgHighlight).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(theme.ColorBorder).
			Padding(0, 1),
		Focused: theme.ColorGreen,
		Errored: theme.ColorRed,

		Adornment: lipgloss.NewStyle().
			Foreground(theme.ColorFgMuted),
		Value: lipgloss.NewStyle().
			Foreground(theme.ColorFgPrimary),
		Placeholder: lipgloss.NewStyle().
			Foreground(theme.ColorFgComment).
			Italic(true),
		Disabled: lipgloss.NewStyle().
			Foreground(theme.ColorFgMuted),
		Caret: lipgloss.NewStyle().
			Foreground(theme.ColorCyan),

		List: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(theme.ColorMagenta).
			PaddingLeft(1),
		Close: lipgloss.NewStyle().
			Foreground(theme.ColorFgMuted),
		Option: lipgloss.NewStyle().
			Foreground(theme.ColorFgPrimary).
			Padding(0, 1),
		OptionHighlight: lipgloss.NewStyle().
			Background(theme.ColorBgHighlight).
			Foreground(theme.ColorFgPrimary).
			Bold(true).
			Padding(0, 1),

		Helper: lipgloss.NewStyle().
			Foreground(theme.ColorFgComment),
		Error: lipgloss.NewStyle().
			Foreground(theme.ColorRed),
	}
}
