package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	discard key.Binding
	keep    key.Binding
	enter   key.Binding
	back    key.Binding
	upload  key.Binding
	create  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		discard: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "discard")),
		keep:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "keep")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		upload:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		create:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new category")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.discard, k.keep, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.discard, k.keep, k.enter},
		{k.up, k.down, k.back},
		{k.upload, k.create, k.quit},
	}
}
