package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add       key.Binding
	NextFld   key.Binding
	PrevFld   key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Open      key.Binding
	NewTask   key.Binding
	Quit      key.Binding
	Save      key.Binding
	Back      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		NextFld:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevFld:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		NewTask:   key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "new")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Save:      key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "save")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// helpKeys adapts the bindings relevant to one screen state to help.KeyMap.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }
