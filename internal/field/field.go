// Package field implements an interactive terminal input: a single-line text box, a multiline
// text area or a dropdown, chosen per render, with deferred helper-text display.
package field

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Variant selects the container style of a field
type Variant string

const (
	VariantStandard Variant = "standard" // underline only
	VariantOutlined Variant = "outlined" // rounded border
	VariantFilled   Variant = "filled"   // shaded background with underline
)

// ParseVariant maps a config string to a Variant. Empty means standard.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "", VariantStandard:
		return VariantStandard, nil
	case VariantOutlined, VariantFilled:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("unknown variant %q", s)
	}
}

const (
	defaultType = "text"
	defaultRows = 3
)

// ChangeEvent is handed to OnChange after every edit that changed the value.
// Msg is the message that caused the edit, untouched.
type ChangeEvent struct {
	FieldID string
	Name    string
	Value   string
	Msg     tea.Msg
}

// Config is everything a field is built from
type Config struct {
	Name        string
	Label       string
	Value       string
	Type        string // "text" (default), "password", "email", "number", ...
	Placeholder string
	Variant     Variant

	Multiline bool
	Rows      int // text area height, default 3

	Dropdown bool
	Options  []Option

	Required   bool
	Disabled   bool
	Error      bool
	HelperText string

	StartAdornment string
	EndAdornment   string
	MaxLength      int
	Width          int

	// Optional handlers. Each may return a command for the host to run.
	OnChange func(ChangeEvent) tea.Cmd
	OnSelect func(value string, data any) tea.Cmd
}

// Model is one field instance
type Model struct {
	id    string
	cfg   Config
	state InteractionState

	value     string // text content, or the chosen option value in dropdown mode
	input     textinput.Model
	area      textarea.Model
	highlight int // highlighted option while the list is open
	focused   bool
	width     int

	Keys   KeyMap
	Styles Styles
}

// New creates a field from cfg, filling in defaults
func New(cfg Config) Model {
	if cfg.Type == "" {
		cfg.Type = defaultType
	}
	if cfg.Rows <= 0 {
		cfg.Rows = defaultRows
	}
	if cfg.Variant == "" {
		cfg.Variant = VariantStandard
	}
	if cfg.Options == nil {
		cfg.Options = []Option{}
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = cfg.Placeholder
	ti.CharLimit = cfg.MaxLength
	ti.Width = 40 // Default width, updated by SetWidth
	if cfg.Type == "password" {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = cfg.Placeholder
	ta.ShowLineNumbers = false
	ta.SetHeight(cfg.Rows)
	if cfg.MaxLength > 0 {
		ta.CharLimit = cfg.MaxLength
	}

	m := Model{
		id:     uuid.NewString(),
		cfg:    cfg,
		input:  ti,
		area:   ta,
		Keys:   DefaultKeyMap(),
		Styles: DefaultStyles(),
	}
	m.input.Cursor.Style = m.Styles.Caret
	m.SetValue(cfg.Value)
	m.SetWidth(cfg.Width)
	return m
}

// ID returns the instance identifier carried in change events
func (m Model) ID() string { return m.id }

// Name returns the configured field name
func (m Model) Name() string { return m.cfg.Name }

// Label returns the configured label
func (m Model) Label() string { return m.cfg.Label }

// Type returns the underlying field kind
func (m Model) Type() string { return m.cfg.Type }

// Variant returns the container style
func (m Model) Variant() Variant { return m.cfg.Variant }

// Rows returns the text area row count
func (m Model) Rows() int { return m.cfg.Rows }

// Required reports whether the field is marked required
func (m Model) Required() bool { return m.cfg.Required }

// Disabled reports whether interaction is gated off
func (m Model) Disabled() bool { return m.cfg.Disabled }

// Error reports the caller supplied error flag
func (m Model) Error() bool { return m.cfg.Error }

// HelperText returns the helper message
func (m Model) HelperText() string { return m.cfg.HelperText }

// Options returns the dropdown options in display order
func (m Model) Options() []Option { return m.cfg.Options }

// State returns a copy of the interaction state
func (m Model) State() InteractionState { return m.state }

// Highlighted returns the index of the highlighted option
func (m Model) Highlighted() int { return m.highlight }

// Value returns the current text, or the chosen option value for dropdowns
func (m Model) Value() string { return m.value }

// SetValue replaces the displayed value. Used by hosts that own the field data.
func (m *Model) SetValue(v string) {
	m.value = v
	m.input.SetValue(v)
	m.area.SetValue(v)
}

// SetError sets the error flag
func (m *Model) SetError(b bool) { m.cfg.Error = b }

// SetHelperText sets the helper message
func (m *Model) SetHelperText(s string) { m.cfg.HelperText = s }

// SetDisabled toggles the disabled gate
func (m *Model) SetDisabled(b bool) { m.cfg.Disabled = b }

// SetDropdown switches dropdown mode on or off
func (m *Model) SetDropdown(b bool) { m.cfg.Dropdown = b }

// SetMultiline switches text area mode on or off
func (m *Model) SetMultiline(b bool) { m.cfg.Multiline = b }

// SetVariant changes the container style
func (m *Model) SetVariant(v Variant) { m.cfg.Variant = v }

// SetOptions replaces the option list. nil is treated as empty.
func (m *Model) SetOptions(opts []Option) {
	if opts == nil {
		opts = []Option{}
	}
	m.cfg.Options = opts
	if m.highlight >= len(opts) {
		m.highlight = 0
	}
}

// SetWidth sets the total rendered width. Zero lets content decide.
func (m *Model) SetWidth(w int) {
	m.width = w
	if w <= 0 {
		return
	}
	inner := w - m.containerStyle().GetHorizontalFrameSize() - m.adornmentWidth()
	if inner < 10 {
		inner = 10
	}
	m.input.Width = inner
	m.area.SetWidth(inner)
}

// Focus focuses the field
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return tea.Batch(m.input.Focus(), m.area.Focus())
}

// Blur removes focus from the field
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
	m.area.Blur()
}

// Focused returns whether the field is focused
func (m Model) Focused() bool { return m.focused }

// Update handles a message and returns the updated field
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	m, cmd, _ := m.HandleMessage(msg)
	return m, cmd
}

// HandleMessage processes a message.
// Returns: updated field, command to execute, and whether the message was consumed.
// Hosts must not apply their own handling to consumed messages.
func (m Model) HandleMessage(msg tea.Msg) (Model, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if !m.focused {
			return m, nil, false
		}
		if m.Presentation() == PresentationDropdown {
			return m.handleDropdownKey(msg)
		}
		return m.handleEditKey(msg)
	}

	// Blink and other editor housekeeping
	var cmd tea.Cmd
	if m.Presentation() == PresentationMultiline {
		m.area, cmd = m.area.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd, false
}

// handleMouse routes a left press by the field-local row it landed on
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil, false
	}
	region := m.HitTest(msg.Y)
	switch region.Kind {
	case RegionSelector:
		ok := m.toggle()
		return m, nil, ok
	case RegionClose:
		ok := m.state.Close()
		return m, nil, ok
	case RegionOption:
		cmd, ok := m.selectOption(region.Index)
		return m, cmd, ok
	}
	return m, nil, false
}

func (m Model) handleDropdownKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if !m.state.IsOpen() {
		if key.Matches(msg, m.Keys.Toggle) {
			ok := m.toggle()
			return m, nil, ok
		}
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.Keys.Close):
		ok := m.state.Close()
		return m, nil, ok
	case key.Matches(msg, m.Keys.Up):
		if m.highlight > 0 {
			m.highlight--
		}
		return m, nil, true
	case key.Matches(msg, m.Keys.Down):
		if m.highlight < len(m.cfg.Options)-1 {
			m.highlight++
		}
		return m, nil, true
	case key.Matches(msg, m.Keys.Select):
		cmd, ok := m.selectOption(m.highlight)
		return m, cmd, ok
	}
	return m, nil, false
}

// handleEditKey feeds a key to the active editor and reports a change upward
func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if m.cfg.Disabled || key.Matches(msg, m.Keys.Close) {
		return m, nil, false
	}

	before := m.value
	var cmd tea.Cmd
	if m.Presentation() == PresentationMultiline {
		m.area, cmd = m.area.Update(msg)
		m.value = m.area.Value()
		m.input.SetValue(m.value)
	} else {
		m.input, cmd = m.input.Update(msg)
		m.value = m.input.Value()
		m.area.SetValue(m.value)
	}

	if m.value == before {
		return m, cmd, true
	}
	m.state.Change(m.cfg.Disabled)
	if m.cfg.OnChange != nil {
		cmd = tea.Batch(cmd, m.cfg.OnChange(ChangeEvent{
			FieldID: m.id,
			Name:    m.cfg.Name,
			Value:   m.value,
			Msg:     msg,
		}))
	}
	return m, cmd, true
}

// toggle applies a selector click, pointing the highlight at the current choice on open
func (m *Model) toggle() bool {
	if !m.state.ToggleSelector(m.cfg.Dropdown, m.cfg.Disabled) {
		return false
	}
	if m.state.IsOpen() {
		m.highlight = 0
		for i, o := range m.cfg.Options {
			if o.Value == m.value {
				m.highlight = i
				break
			}
		}
	}
	return true
}

// selectOption applies an option click for the option at index i
func (m *Model) selectOption(i int) (tea.Cmd, bool) {
	if i < 0 || i >= len(m.cfg.Options) {
		return nil, false
	}
	if !m.state.SelectOption() {
		return nil, false
	}
	opt := m.cfg.Options[i]
	m.value = opt.Value
	m.highlight = i
	if m.cfg.OnSelect == nil {
		return nil, true
	}
	return m.cfg.OnSelect(opt.Value, opt.Data), true
}

// selectedLabel returns the label of the chosen option, or the raw value
func (m Model) selectedLabel() string {
	for _, o := range m.cfg.Options {
		if o.Value == m.value {
			return o.display()
		}
	}
	return m.value
}
