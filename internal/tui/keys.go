package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Spin        key.Binding
	NextTarget  key.Binding
	PrevTarget  key.Binding
	ClearTarget key.Binding
	PickTarget  key.Binding
	Entries     key.Binding
	Up          key.Binding
	Down        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Spin: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "spin"),
		),
		NextTarget: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t/T", "target"),
		),
		PrevTarget: key.NewBinding(
			key.WithKeys("T"),
		),
		ClearTarget: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear target"),
		),
		PickTarget: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "target selected"),
		),
		Entries: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "entries/results"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑↓/j/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Spin, k.NextTarget, k.ClearTarget, k.Entries, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Spin, k.NextTarget, k.ClearTarget, k.PickTarget},
		{k.Entries, k.Up, k.Quit},
	}
}
