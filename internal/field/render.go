package field

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Presentation is one of the three exclusive ways a field renders
type Presentation int

const (
	PresentationSingleLine Presentation = iota
	PresentationMultiline
	PresentationDropdown
)

func (p Presentation) String() string {
	switch p {
	case PresentationMultiline:
		return "multiline"
	case PresentationDropdown:
		return "dropdown"
	default:
		return "single-line"
	}
}

// SelectPresentation picks the presentation. Dropdown wins over multiline.
func SelectPresentation(dropdown, multiline bool) Presentation {
	switch {
	case dropdown:
		return PresentationDropdown
	case multiline:
		return PresentationMultiline
	default:
		return PresentationSingleLine
	}
}

// Presentation returns the presentation for the current configuration
func (m Model) Presentation() Presentation {
	return SelectPresentation(m.cfg.Dropdown, m.cfg.Multiline)
}

// RegionKind identifies what sits on a rendered row
type RegionKind int

const (
	RegionNone RegionKind = iota
	RegionLabel
	RegionInput    // text box or text area
	RegionSelector // closed face of a dropdown
	RegionClose    // close control of the open list
	RegionOption
	RegionHelper
)

// Region is the result of a hit test. Index is set for RegionOption only.
type Region struct {
	Kind  RegionKind
	Index int
}

// section is one vertical block of the rendered field
type section struct {
	region Region
	view   string
}

// sections lays the field out top to bottom. View and HitTest both walk it.
func (m Model) sections() []section {
	var out []section

	if m.cfg.Label != "" {
		out = append(out, section{Region{Kind: RegionLabel}, m.renderLabel()})
	}

	switch m.Presentation() {
	case PresentationDropdown:
		out = append(out, section{Region{Kind: RegionSelector}, m.renderSelector()})
		if m.state.IsOpen() {
			out = append(out, section{Region{Kind: RegionClose}, m.Styles.List.Render(m.Styles.Close.Render("✕ close"))})
			for i, o := range m.cfg.Options {
				out = append(out, section{Region{Kind: RegionOption, Index: i}, m.Styles.List.Render(m.renderOption(i, o))})
			}
		}
	case PresentationMultiline:
		out = append(out, section{Region{Kind: RegionInput}, m.renderBox(m.area.View())})
	default:
		out = append(out, section{Region{Kind: RegionInput}, m.renderBox(m.input.View())})
	}

	if m.state.ShowHelper(m.cfg.Error, m.cfg.HelperText) {
		style := m.Styles.Helper
		if m.cfg.Error {
			style = m.Styles.Error
		}
		out = append(out, section{Region{Kind: RegionHelper}, style.Render(m.cfg.HelperText)})
	}
	return out
}

// View renders the field
func (m Model) View() string {
	secs := m.sections()
	views := make([]string, len(secs))
	for i, s := range secs {
		views[i] = s.view
	}
	return strings.Join(views, "\n")
}

// Height returns the number of rows the field currently occupies
func (m Model) Height() int {
	return lipgloss.Height(m.View())
}

// HitTest maps a field-local row to the region rendered there
func (m Model) HitTest(y int) Region {
	if y < 0 {
		return Region{Kind: RegionNone}
	}
	row := 0
	for _, s := range m.sections() {
		h := lipgloss.Height(s.view)
		if y < row+h {
			return s.region
		}
		row += h
	}
	return Region{Kind: RegionNone}
}

func (m Model) renderLabel() string {
	label := m.Styles.Label.Render(m.cfg.Label)
	if m.cfg.Required {
		label += m.Styles.Required.Render(" *")
	}
	return label
}

// renderSelector draws the closed face of a dropdown: caret plus chosen label
func (m Model) renderSelector() string {
	caret := "▾"
	if m.state.IsOpen() {
		caret = "▴"
	}

	var text string
	switch {
	case m.value != "":
		text = m.Styles.Value.Render(m.selectedLabel())
	default:
		text = m.Styles.Placeholder.Render(m.cfg.Placeholder)
	}
	if m.cfg.Disabled {
		text = m.Styles.Disabled.Render(m.selectedLabel())
	}
	return m.renderBox(m.Styles.Caret.Render(caret) + " " + text)
}

func (m Model) renderOption(i int, o Option) string {
	if i == m.highlight {
		return m.Styles.OptionHighlight.Render("▸ " + o.display())
	}
	return m.Styles.Option.Render("  " + o.display())
}

// renderBox wraps content with adornments and the variant container
func (m Model) renderBox(content string) string {
	parts := make([]string, 0, 3)
	if m.cfg.StartAdornment != "" {
		parts = append(parts, m.Styles.Adornment.Render(m.cfg.StartAdornment+" "))
	}
	parts = append(parts, content)
	if m.cfg.EndAdornment != "" {
		parts = append(parts, m.Styles.Adornment.Render(" "+m.cfg.EndAdornment))
	}
	inner := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	style := m.containerStyle()
	if m.width > 0 {
		style = style.Width(m.width - style.GetHorizontalBorderSize())
	}
	return style.Render(inner)
}

// containerStyle returns the variant style, recolored for focus and visible errors
func (m Model) containerStyle() lipgloss.Style {
	var style lipgloss.Style
	switch m.cfg.Variant {
	case VariantOutlined:
		style = m.Styles.Outlined
	case VariantFilled:
		style = m.Styles.Filled
	default:
		style = m.Styles.Standard
	}

	switch {
	case m.cfg.Error && m.state.HasInteracted():
		style = style.BorderForeground(m.Styles.Errored)
	case m.focused:
		style = style.BorderForeground(m.Styles.Focused)
	}
	return style
}

func (m Model) adornmentWidth() int {
	w := 0
	if m.cfg.StartAdornment != "" {
		w += lipgloss.Width(m.cfg.StartAdornment) + 1
	}
	if m.cfg.EndAdornment != "" {
		w += lipgloss.Width(m.cfg.EndAdornment) + 1
	}
	return w
}
