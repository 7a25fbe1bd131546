package ui

import "github.com/charmbracelet/bubbles/key"

var keys = struct {
	Quit      key.Binding
	QuitGrid  key.Binding
	Debug     key.Binding
	Escape    key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Tab       key.Binding
	Search    key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	AddToList key.Binding
}{
	Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^c", "quit")),
	QuitGrid:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Debug:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("^e", "debug")),
	Escape:    key.NewBinding(key.WithKeys("esc")),
	PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "movies")),
	Search:    key.NewBinding(key.WithKeys("/", "esc", "tab"), key.WithHelp("/", "search")),
	Left:      key.NewBinding(key.WithKeys("left", "h")),
	Right:     key.NewBinding(key.WithKeys("right", "l")),
	Up:        key.NewBinding(key.WithKeys("up", "k")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	AddToList: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to list")),
}
