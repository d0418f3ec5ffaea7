package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every dashboard binding, grouped as list navigation,
// habit actions, and app chrome.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding

	Toggle  key.Binding
	Add     key.Binding
	Edit    key.Binding
	Archive key.Binding
	Delete  key.Binding
	Freeze  key.Binding

	Tab      key.Binding
	ShiftTab key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// bind pairs a key set with its help entry; disp is the label shown in
// the help view.
func bind(disp, action string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(disp, action))
}

// ShortHelp surfaces the keys a first-time user needs: marking a habit
// done and adding one.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Toggle, k.Add, k.Edit, k.Archive, k.Delete, k.Freeze},
		{k.Tab, k.ShiftTab, k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       bind("↑/k", "up", "up", "k"),
		Down:     bind("↓/j", "down", "down", "j"),
		Enter:    bind("enter", "select", "enter"),
		Toggle:   bind("m", "toggle done", "m", " "),
		Add:      bind("a", "add habit", "a"),
		Edit:     bind("e", "edit habit", "e"),
		Archive:  bind("x", "archive habit", "x"),
		Delete:   bind("d", "delete habit", "d"),
		Freeze:   bind("f", "freeze today", "f"),
		Tab:      bind("tab", "next tab", "tab"),
		ShiftTab: bind("shift+tab", "prev tab", "shift+tab"),
		Help:     bind("?", "toggle help", "?"),
		Quit:     bind("q", "quit", "q", "ctrl+c"),
	}
}
