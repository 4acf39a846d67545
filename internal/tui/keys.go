package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	forceQuit key.Binding
	logout    key.Binding
	newItem   key.Binding
	refresh   key.Binding
	profile   key.Binding
	copy      key.Binding
	version   key.Binding
	toggle    key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	esc:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	tab:       key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	forceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	logout:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log out")),
	newItem:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new client")),
	refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	profile:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit profile")),
	copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy email")),
	version:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "version")),
	toggle:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle status")),
}
