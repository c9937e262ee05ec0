package field

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings a focused field reacts to
type KeyMap struct {
	Toggle key.Binding // open/close the option list (selector click)
	Up     key.Binding
	Down   key.Binding
	Select key.Binding // pick the highlighted option (option click)
	Close  key.Binding // close control
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "open list"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous option"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next option"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close list"),
		),
	}
}

// ShortHelp returns the bindings relevant to a closed dropdown
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle}
}

// FullHelp returns the bindings relevant to an open dropdown
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Close},
	}
}
