package selector

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the selector's bindings, matched against decoded chunks.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Toggle    key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Interrupt key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "page up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "page down")),
	Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("Home", "first")),
	End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("End", "last")),
	Toggle:    key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle")),
	Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Cancel:    key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc/q", "cancel")),
	Interrupt: key.NewBinding(key.WithKeys("ctrl+c")),
}
