package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Call key.Binding
	Bet  key.Binding
	Fold key.Binding
	Next key.Binding
	Deal key.Binding
	Help key.Binding
	Quit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Call: key.NewBinding(key.WithKeys("c", " "), key.WithHelp("c", "check/call")),
		Bet:  key.NewBinding(key.WithKeys("b", "r"), key.WithHelp("b", "bet/raise")),
		Fold: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fold")),
		Next: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "end street")),
		Deal: key.NewBinding(key.WithKeys("d", "enter"), key.WithHelp("d", "deal")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Call, k.Bet, k.Fold, k.Deal, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Call, k.Bet, k.Fold},
		{k.Next, k.Deal},
		{k.Help, k.Quit},
	}
}
