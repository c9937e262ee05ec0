package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/clive/inputkit/internal/field"
)

// control is one row of the form. Methods that change state return the updated control.
type control interface {
	Name() string
	Value() string
	Type() string
	Required() bool
	Disabled() bool
	Height() int
	View() string
	kind() string

	focus() (control, tea.Cmd)
	blur() control
	withWidth(w int) control
	flagMissing(missing bool) control
	handle(msg tea.Msg) (control, tea.Cmd, bool)
}

// richControl wraps a full field: dropdown, text area or text box
type richControl struct {
	field.Model
}

func (c richControl) kind() string { return c.Presentation().String() }

func (c richControl) focus() (control, tea.Cmd) {
	cmd := c.Model.Focus()
	return c, cmd
}

func (c richControl) blur() control {
	c.Model.Blur()
	return c
}

func (c richControl) withWidth(w int) control {
	c.Model.SetWidth(w)
	return c
}

func (c richControl) flagMissing(missing bool) control {
	c.SetError(missing)
	if missing && c.HelperText() == "" {
		c.SetHelperText(requiredHint)
	}
	return c
}

func (c richControl) handle(msg tea.Msg) (control, tea.Cmd, bool) {
	var (
		cmd      tea.Cmd
		consumed bool
	)
	c.Model, cmd, consumed = c.HandleMessage(msg)
	return c, cmd, consumed
}

// plainControl wraps a bare TextField
type plainControl struct {
	field.TextField
}

func (c plainControl) kind() string { return "plain" }

func (c plainControl) focus() (control, tea.Cmd) {
	cmd := c.TextField.Focus()
	return c, cmd
}

func (c plainControl) blur() control {
	c.TextField.Blur()
	return c
}

func (c plainControl) withWidth(w int) control {
	c.TextField.SetWidth(w)
	return c
}

// flagMissing only clears the message it set itself
func (c plainControl) flagMissing(missing bool) control {
	switch {
	case missing && c.ErrorMessage() == "":
		c.SetErrorMessage(requiredHint)
	case !missing && c.ErrorMessage() == requiredHint:
		c.SetErrorMessage("")
	}
	return c
}

// handle claims every key a focused text box receives except esc
func (c plainControl) handle(msg tea.Msg) (control, tea.Cmd, bool) {
	focused := c.Focused()
	var cmd tea.Cmd
	c.TextField, cmd = c.Update(msg)
	k, isKey := msg.(tea.KeyMsg)
	return c, cmd, isKey && focused && !c.Disabled() && k.Type != tea.KeyEsc
}
