package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-client-desk/internal/session"
	"github.com/MKhiriev/go-client-desk/models"
)

const (
	clientName = iota
	clientEmail
	clientCompany
)

// ClientFormModel creates a client record. The status is not typed but
// toggled, and starts as active.
type ClientFormModel struct {
	env *env

	form       form
	status     models.ClientStatus
	submitting bool
	errMsg     string
}

func NewClientFormModel(e *env) *ClientFormModel {
	return &ClientFormModel{
		env: e,
		form: newForm(
			field{label: "Name", placeholder: "Jane Doe"},
			field{label: "Email", placeholder: "jane@company.com"},
			field{label: "Company", placeholder: "Company Ltd"},
		),
		status: models.ClientActive,
	}
}

func (m *ClientFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ClientFormModel) reset() {
	m.form.reset()
	m.status = models.ClientActive
	m.submitting = false
	m.errMsg = ""
}

func (m *ClientFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(opDoneMsg); ok && done.op == session.OpAddClient {
		m.submitting = false
		if done.err != nil {
			m.errMsg = done.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return NavigateTo{Page: pageDashboard, Payload: clientsRefreshedMsg{}} }
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageDashboard, Payload: clientsRefreshedMsg{}} }
		case key.Matches(keyMsg, keys.toggle):
			if m.status == models.ClientActive {
				m.status = models.ClientInactive
			} else {
				m.status = models.ClientActive
			}
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			return m, m.submit()
		}
	}

	return m, m.form.update(msg)
}

func (m *ClientFormModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	c := models.NewClient{
		Name:    m.form.value(clientName),
		Email:   m.form.value(clientEmail),
		Company: m.form.value(clientCompany),
		Status:  m.status,
	}
	if m.errMsg = m.env.validate(c); m.errMsg != "" {
		return nil
	}

	m.submitting = true
	return m.env.run(session.OpAddClient, func(ctx context.Context) error {
		_, err := m.env.session.AddClient(ctx, c)
		return err
	})
}

func (m *ClientFormModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	b.WriteString("Status  │ ")
	b.WriteString(selectedStyle.Render(string(m.status)))
	b.WriteString("\n")
	b.WriteString(formStatus("Add client", m.submitting, m.errMsg))

	return renderPage("NEW CLIENT", strings.TrimRight(b.String(), "\n"),
		keys.esc, keys.tab, keys.toggle, keys.enter)
}
