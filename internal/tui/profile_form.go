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
	profileName = iota
	profileEmail
)

// ProfileModel edits the name and email of the current user. Only fields
// that differ from the current profile are sent.
type ProfileModel struct {
	env *env

	form       form
	submitting bool
	errMsg     string
}

func NewProfileModel(e *env) *ProfileModel {
	return &ProfileModel{
		env: e,
		form: newForm(
			field{label: "Name"},
			field{label: "Email"},
		),
	}
}

func (m *ProfileModel) Init() tea.Cmd {
	return textinput.Blink
}

// reset fills the form from the current user.
func (m *ProfileModel) reset() {
	m.form.reset()
	m.submitting = false
	m.errMsg = ""

	if u := m.env.session.User(); u != nil {
		m.form.setValue(profileName, u.Name)
		m.form.setValue(profileEmail, u.Email)
	}
}

func (m *ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(opDoneMsg); ok && done.op == session.OpUpdateProfile {
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
		case key.Matches(keyMsg, keys.enter):
			return m, m.submit()
		}
	}

	return m, m.form.update(msg)
}

// patch builds the update from the fields that changed.
func (m *ProfileModel) patch() models.UserPatch {
	var p models.UserPatch

	current := m.env.session.User()
	if current == nil {
		current = &models.User{}
	}
	if name := m.form.value(profileName); name != current.Name {
		p.Name = &name
	}
	if email := m.form.value(profileEmail); email != current.Email {
		p.Email = &email
	}
	return p
}

func (m *ProfileModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	p := m.patch()
	if m.errMsg = m.env.validate(p); m.errMsg != "" {
		return nil
	}

	m.submitting = true
	return m.env.run(session.OpUpdateProfile, func(ctx context.Context) error {
		return m.env.session.UpdateProfile(ctx, p)
	})
}

func (m *ProfileModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	b.WriteString(formStatus("Save", m.submitting, m.errMsg))

	return renderPage("PROFILE", strings.TrimRight(b.String(), "\n"), keys.esc, keys.tab, keys.enter)
}
