package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	title string
	page  string
}

// MenuModel is the start page of a logged out session.
type MenuModel struct {
	items []menuItem
	idx   int
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{title: "Log in", page: pageLogin},
			{title: "Sign up", page: pageSignup},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		page := m.items[m.idx].page
		return m, func() tea.Msg { return NavigateTo{Page: page} }
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder
	for i, item := range m.items {
		line := fmt.Sprintf("  %d  %s", i+1, item.title)
		if i == m.idx {
			line = selectedStyle.Render(fmt.Sprintf("> %d  %s", i+1, item.title))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return renderPage("CLIENT DESK", strings.TrimRight(b.String(), "\n"),
		keys.enter, keys.up, keys.down, keys.version, keys.quit)
}
