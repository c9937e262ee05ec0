// Package tui hosts a form of fields in a full-screen Bubble Tea program.
package tui

import (
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clive/inputkit/internal/config"
	"github.com/clive/inputkit/internal/field"
	"github.com/clive/inputkit/internal/formspec"
	"github.com/clive/inputkit/internal/logging"
)

const (
	headerRows    = 2 // title + blank line
	maxFieldWidth = 72
	requiredHint  = "This field is required"
)

// Messages

type fieldChangedMsg struct {
	name  string
	value string
}

type fieldSelectedMsg struct {
	name  string
	value string
	data  any
}

type configSavedMsg struct {
	err error
}

// Model is the root form model
type Model struct {
	// Dimensions
	width  int
	height int
	ready  bool

	title  string
	cfg    *config.Config
	logger *slog.Logger

	// Fields and their latest values by name
	fields []control
	focus  int
	values map[string]string

	// UI state
	keys       KeyMap
	help       help.Model
	debug      DebugPanel
	status     string
	statusErr  bool
	submitted  bool
	quitting   bool
	saveConfig func(*config.Config) error
}

// NewRootModel builds the form host. Fields are prefilled from cfg.LastValues.
func NewRootModel(spec *formspec.Spec, cfg *config.Config, logger *slog.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	defaultVariant, err := field.ParseVariant(cfg.DefaultVariant)
	if err != nil {
		logger.Warn("ignoring default variant", "error", err)
		defaultVariant = field.VariantStandard
	}

	m := Model{
		title:      spec.Title,
		cfg:        cfg,
		logger:     logger,
		values:     make(map[string]string, len(spec.Fields)),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		debug:      NewDebugPanel(cfg.Debug),
		saveConfig: config.Save,
	}

	onChange := func(e field.ChangeEvent) tea.Cmd {
		return func() tea.Msg {
			return fieldChangedMsg{name: e.Name, value: e.Value}
		}
	}

	for _, fs := range spec.Fields {
		prefill, hasPrefill := cfg.LastValues[fs.Name]
		hasPrefill = hasPrefill && !fs.Disabled

		var c control
		if fs.Plain {
			tc := fs.TextFieldConfig()
			if hasPrefill {
				tc.Value = prefill
			}
			tc.OnChange = onChange
			c = plainControl{field.NewTextField(tc)}
		} else {
			fc := fs.Config()
			if fs.Variant == "" {
				fc.Variant = defaultVariant
			}
			if hasPrefill {
				fc.Value = prefill
			}
			fc.OnChange = onChange
			name := fc.Name
			fc.OnSelect = func(value string, data any) tea.Cmd {
				return func() tea.Msg {
					return fieldSelectedMsg{name: name, value: value, data: data}
				}
			}
			c = richControl{field.New(fc)}
		}

		m.values[c.Name()] = c.Value()
		m.fields = append(m.fields, c)
	}

	m.focus = m.nextEnabled(-1, 1)
	if m.focus >= 0 {
		m.fields[m.focus], _ = m.fields[m.focus].focus()
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// WithNotice returns the model with an informational status message
func (m Model) WithNotice(s string) Model {
	m.setStatus(s, false)
	return m
}

// Submitted reports whether the form was submitted successfully
func (m Model) Submitted() bool {
	return m.submitted
}

// Values returns a copy of the current values by field name
func (m Model) Values() map[string]string {
	return maps.Clone(m.values)
}

// Field returns the field with the given name. Plain text boxes are not fields.
func (m Model) Field(name string) (field.Model, bool) {
	if i := m.indexOf(name); i >= 0 {
		if c, ok := m.fields[i].(richControl); ok {
			return c.Model, true
		}
	}
	return field.Model{}, false
}

// TextField returns the plain text box with the given name
func (m Model) TextField(name string) (field.TextField, bool) {
	if i := m.indexOf(name); i >= 0 {
		if c, ok := m.fields[i].(plainControl); ok {
			return c.TextField, true
		}
	}
	return field.TextField{}, false
}

// Focused returns the name of the focused field, or "" if none can take focus
func (m Model) Focused() string {
	if m.focus < 0 {
		return ""
	}
	return m.fields[m.focus].Name()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		w := msg.Width - 4
		if m.debug.IsEnabled() {
			w -= msg.Width / 3
		}
		w = min(w, maxFieldWidth)
		for i := range m.fields {
			m.fields[i] = m.fields[i].withWidth(w)
		}
		return m, nil

	case fieldChangedMsg:
		m.values[msg.name] = msg.value
		m.debug.Add(eventChange, msg.name, fmt.Sprintf("len=%d", len(msg.value)))
		m.logger.Debug("field changed", "field", msg.name, "length", len(msg.value))
		m.revalidate(msg.name)
		return m, nil

	case fieldSelectedMsg:
		m.values[msg.name] = msg.value
		m.debug.Add(eventSelect, msg.name, msg.value)
		m.logger.Debug("option selected", "field", msg.name, "value", msg.value)
		m.revalidate(msg.name)
		if info, ok := msg.data.(formspec.TrackerInfo); ok {
			m.setStatus(info.Name+": "+info.Description, false)
		}
		return m, nil

	case configSavedMsg:
		if msg.err != nil {
			m.debug.Add(eventError, "", msg.err.Error())
			m.logger.Error("failed to save config", "error", msg.err)
			m.setStatus("Save failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.submitted = true
		m.quitting = true
		m.logger.Info("form submitted", "fields", len(m.values))
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	// Cursor blinks and anything else go to the focused field
	if m.focus >= 0 {
		var cmd tea.Cmd
		m.fields[m.focus], cmd, _ = m.fields[m.focus].handle(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m, m.moveFocus(1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.moveFocus(-1)

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Debug):
		m.debug.Toggle()
		return m, nil
	}

	if m.focus >= 0 {
		f, cmd, consumed := m.fields[m.focus].handle(msg)
		m.fields[m.focus] = f
		if consumed {
			return m, cmd
		}
	}

	// Only keys no field claimed reach the form
	if key.Matches(msg, m.keys.Escape) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	i, localY := m.fieldAt(msg.Y + m.scrollOffset())
	if i < 0 {
		return m, nil
	}

	var cmds []tea.Cmd
	if i != m.focus && !m.fields[i].Disabled() {
		cmds = append(cmds, m.focusField(i))
	}

	local := msg
	local.Y = localY
	f, cmd, _ := m.fields[i].handle(local)
	m.fields[i] = f
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// scrollOffset is the number of view rows above the top of the screen.
// The renderer drops the top of a view taller than the terminal.
func (m Model) scrollOffset() int {
	if m.height <= 0 {
		return 0
	}
	return max(0, lipgloss.Height(m.View())-m.height)
}

// fieldAt maps a view row to a field index and a row inside that field.
// It walks the same layout View renders.
func (m Model) fieldAt(y int) (int, int) {
	top := headerRows
	for i, f := range m.fields {
		h := f.Height()
		if y >= top && y < top+h {
			return i, y - top
		}
		top += h + 1
	}
	return -1, 0
}

func (m *Model) moveFocus(dir int) tea.Cmd {
	next := m.nextEnabled(m.focus, dir)
	if next < 0 || next == m.focus {
		return nil
	}
	return m.focusField(next)
}

func (m *Model) focusField(i int) tea.Cmd {
	if m.focus >= 0 {
		m.fields[m.focus] = m.fields[m.focus].blur()
	}
	m.focus = i
	m.debug.Add(eventFocus, m.fields[i].Name(), "")
	var cmd tea.Cmd
	m.fields[i], cmd = m.fields[i].focus()
	return cmd
}

// nextEnabled finds the next enabled field from i in direction dir, wrapping around
func (m Model) nextEnabled(i, dir int) int {
	n := len(m.fields)
	for step := 1; step <= n; step++ {
		j := ((i+dir*step)%n + n) % n
		if !m.fields[j].Disabled() {
			return j
		}
	}
	return -1
}

func (m Model) indexOf(name string) int {
	for i, f := range m.fields {
		if f.Name() == name {
			return i
		}
	}
	return -1
}

// revalidate clears the required error once a field has a value
func (m *Model) revalidate(name string) {
	i := m.indexOf(name)
	if i < 0 || !m.fields[i].Required() {
		return
	}
	m.fields[i] = m.fields[i].flagMissing(m.values[name] == "")
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	var missing []string
	for i, f := range m.fields {
		if !f.Required() || m.values[f.Name()] != "" {
			continue
		}
		m.fields[i] = f.flagMissing(true)
		missing = append(missing, f.Name())
	}
	if len(missing) > 0 {
		m.debug.Add(eventError, strings.Join(missing, ","), "required")
		m.setStatus("Required: "+strings.Join(missing, ", "), true)
		return m, nil
	}

	m.debug.Add(eventSubmit, "", fmt.Sprintf("%d fields", len(m.values)))
	cfg := *m.cfg
	cfg.LastValues = maps.Clone(m.values)
	for _, f := range m.fields {
		if f.Type() == "password" {
			delete(cfg.LastValues, f.Name())
		}
	}
	save := m.saveConfig
	return m, func() tea.Msg {
		return configSavedMsg{err: save(&cfg)}
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	for _, f := range m.fields {
		b.WriteString(f.View())
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.helpView())

	form := FormStyle.Render(b.String())
	if !m.debug.IsEnabled() {
		return form
	}
	panelHeight := m.height
	if panelHeight <= 0 {
		panelHeight = lipgloss.Height(form)
	}
	panel := m.debug.Render(max(m.width/3, 30), panelHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, form, panel)
}

func (m Model) renderHeader() string {
	title := m.title
	if title == "" {
		title = "Form"
	}
	return HeaderStyle.Render(title) + " " + SubtitleStyle.Render(fmt.Sprintf("(%d fields)", len(m.fields)))
}

func (m Model) renderStatusBar() string {
	var parts []string
	if name := m.Focused(); name != "" {
		f := m.fields[m.focus]
		parts = append(parts, StatusFocusStyle.Render(name)+DimStyle.Render(" "+f.kind()))
	}

	filled := 0
	for _, v := range m.values {
		if v != "" {
			filled++
		}
	}
	parts = append(parts, DimStyle.Render(fmt.Sprintf("%d/%d filled", filled, len(m.fields))))

	if m.status != "" {
		style := SuccessStyle
		if m.statusErr {
			style = ErrorStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	return StatusBarStyle.Render(strings.Join(parts, DimStyle.Render(" │ ")))
}

func (m Model) helpView() string {
	view := m.help.View(m.keys)
	if m.focus < 0 {
		return view
	}
	f, ok := m.fields[m.focus].(richControl)
	if ok && f.Presentation() == field.PresentationDropdown && f.State().IsOpen() {
		view += "\n" + m.help.FullHelpView(f.Keys.FullHelp())
	}
	return view
}
