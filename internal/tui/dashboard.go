package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/go-client-desk/internal/session"
	"github.com/MKhiriev/go-client-desk/models"
)

// DashboardModel shows the profile and the client list of the session.
type DashboardModel struct {
	env *env

	idx     int
	busy    bool
	spinner spinner.Model
	status  string
	errMsg  string

	// copyText writes to the system clipboard.
	copyText func(string) error
}

func NewDashboardModel(e *env) *DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &DashboardModel{
		env:      e,
		spinner:  s,
		copyText: clipboard.WriteAll,
	}
}

// Init loads the client list.
func (m *DashboardModel) Init() tea.Cmd {
	return m.start(session.OpFetchClients, m.env.session.FetchClients)
}

func (m *DashboardModel) reset() {
	m.status = ""
	m.errMsg = ""
}

func (m *DashboardModel) start(op string, fn func(ctx context.Context) error) tea.Cmd {
	m.busy = true
	m.errMsg = ""
	return tea.Batch(m.env.run(op, fn), m.spinner.Tick)
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case opDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		m.clampCursor()
		return m, nil

	case clientsRefreshedMsg:
		m.clampCursor()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Could not copy to clipboard"
		} else {
			m.status = "Copied " + msg.text
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	clients := m.env.session.Clients()

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(clients)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case m.busy:
		// one operation at a time from this page
	case key.Matches(msg, keys.newItem):
		return m, func() tea.Msg { return NavigateTo{Page: pageClient} }
	case key.Matches(msg, keys.profile):
		return m, func() tea.Msg { return NavigateTo{Page: pageProfile} }
	case key.Matches(msg, keys.refresh):
		return m, m.start(session.OpFetchClients, m.env.session.FetchClients)
	case key.Matches(msg, keys.logout):
		return m, m.start(session.OpLogout, func(ctx context.Context) error {
			m.env.session.Logout(ctx)
			return nil
		})
	case key.Matches(msg, keys.copy):
		if m.idx < len(clients) {
			email := clients[m.idx].Email
			copyText := m.copyText
			return m, func() tea.Msg {
				return copiedMsg{text: email, err: copyText(email)}
			}
		}
	}

	return m, nil
}

func (m *DashboardModel) clampCursor() {
	n := len(m.env.session.Clients())
	if m.idx >= n {
		m.idx = max(n-1, 0)
	}
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	if u := m.env.session.User(); u != nil {
		b.WriteString(fmt.Sprintf("Signed in as %s <%s>\n\n", u.Name, u.Email))
	}

	clients := m.env.session.Clients()
	if len(clients) == 0 {
		b.WriteString("No clients yet\n")
	} else {
		b.WriteString(renderClientTable(clients, m.idx))
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString("\n" + m.spinner.View() + " Loading...\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg) + "\n")
	}

	return renderPage("CLIENTS", strings.TrimRight(b.String(), "\n"),
		keys.up, keys.down, keys.newItem, keys.profile, keys.copy, keys.refresh, keys.logout, keys.quit)
}

// renderClientTable draws clients with the row at selected highlighted.
func renderClientTable(clients []models.Client, selected int) string {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			fitText(c.Name, 24),
			fitText(c.Email, 32),
			fitText(c.Company, 24),
			string(c.Status),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorder).
		Headers("NAME", "EMAIL", "COMPANY", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == selected:
				return cellStyle.Inherit(selectedStyle)
			default:
				return cellStyle
			}
		}).
		Render()
}
