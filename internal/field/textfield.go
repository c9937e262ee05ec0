package field

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextFieldConfig configures a plain TextField
type TextFieldConfig struct {
	Name         string
	Label        string
	Value        string
	Type         string
	Placeholder  string
	Required     bool
	Disabled     bool
	MaxLength    int
	ErrorMessage string
	Pressable    bool // render the bare input without label or error line
	OnChange     func(ChangeEvent) tea.Cmd
}

// TextField is a single-line field without interaction tracking.
// The error message shows whenever it is set.
type TextField struct {
	cfg    TextFieldConfig
	input  textinput.Model
	Styles Styles
}

// NewTextField creates a plain text field
func NewTextField(cfg TextFieldConfig) TextField {
	if cfg.Type == "" {
		cfg.Type = defaultType
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = cfg.Placeholder
	ti.CharLimit = cfg.MaxLength
	ti.Width = 40
	if cfg.Type == "password" {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.SetValue(cfg.Value)

	return TextField{
		cfg:    cfg,
		input:  ti,
		Styles: DefaultStyles(),
	}
}

// Name returns the field name
func (t TextField) Name() string { return t.cfg.Name }

// Value returns the current text
func (t TextField) Value() string { return t.input.Value() }

// Type returns the input type
func (t TextField) Type() string { return t.cfg.Type }

// Required reports whether the label carries the required marker
func (t TextField) Required() bool { return t.cfg.Required }

// Disabled reports whether edits are ignored
func (t TextField) Disabled() bool { return t.cfg.Disabled }

// ErrorMessage returns the error line, empty when none is shown
func (t TextField) ErrorMessage() string { return t.cfg.ErrorMessage }

// SetValue replaces the text
func (t *TextField) SetValue(v string) { t.input.SetValue(v) }

// SetErrorMessage sets or clears the error line
func (t *TextField) SetErrorMessage(s string) { t.cfg.ErrorMessage = s }

// SetWidth sets the total rendered width of the input box
func (t *TextField) SetWidth(w int) {
	if w <= 0 {
		return
	}
	t.input.Width = max(w-t.Styles.Outlined.GetHorizontalFrameSize(), 10)
}

// Focus focuses the field
func (t *TextField) Focus() tea.Cmd { return t.input.Focus() }

// Blur removes focus
func (t *TextField) Blur() { t.input.Blur() }

// Focused returns whether the field is focused
func (t TextField) Focused() bool { return t.input.Focused() }

// Update feeds msg to the input and forwards edits to OnChange
func (t TextField) Update(msg tea.Msg) (TextField, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && t.cfg.Disabled {
		return t, nil
	}
	before := t.input.Value()
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	if t.input.Value() == before || t.cfg.OnChange == nil {
		return t, cmd
	}
	return t, tea.Batch(cmd, t.cfg.OnChange(ChangeEvent{
		Name:  t.cfg.Name,
		Value: t.input.Value(),
		Msg:   msg,
	}))
}

// View renders the field
func (t TextField) View() string {
	box := t.Styles.Outlined
	if t.input.Focused() {
		box = box.BorderForeground(t.Styles.Focused)
	}
	if t.cfg.Pressable {
		return box.Render(t.input.View())
	}

	var rows []string
	if t.cfg.Label != "" {
		label := t.Styles.Label.Render(t.cfg.Label)
		if t.cfg.Required {
			label += t.Styles.Required.Render(" *")
		}
		rows = append(rows, label)
	}
	rows = append(rows, box.Render(t.input.View()))
	if t.cfg.ErrorMessage != "" {
		rows = append(rows, t.Styles.Error.Render(t.cfg.ErrorMessage))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Height returns the number of rows the field currently occupies
func (t TextField) Height() int {
	return lipgloss.Height(t.View())
}
