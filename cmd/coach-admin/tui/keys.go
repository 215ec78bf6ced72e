package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the selector key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Focus    key.Binding
	Clear    key.Binding
	Done     key.Binding
	Abort    key.Binding
}

// DefaultKeyMap is the built-in selector key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+n"),
		key.WithHelp("PgDn", "next page"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+p"),
		key.WithHelp("PgUp", "prev page"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("Tab", "list/search"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "clear"),
	),
	Done: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "done"),
	),
	Abort: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "abort"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.PageDown, k.PageUp, k.Clear, k.Done}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Focus},
		{k.PageDown, k.PageUp, k.Clear, k.Done, k.Abort},
	}
}
