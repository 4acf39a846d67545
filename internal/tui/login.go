// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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
	loginEmail = iota
	loginPassword
)

// LoginModel is the Bubble Tea model for the login screen. It renders the
// email and password inputs and runs [session.Store.Login] on submit. On
// success it opens the dashboard.
type LoginModel struct {
	env *env

	form       form
	submitting bool
	errMsg     string
}

// NewLoginModel creates a [LoginModel] with the email input focused.
func NewLoginModel(e *env) *LoginModel {
	return &LoginModel{
		env: e,
		form: newForm(
			field{label: "Email", placeholder: "you@example.com"},
			field{label: "Password", placeholder: "password", secret: true},
		),
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) reset() {
	m.form.reset()
	m.submitting = false
	m.errMsg = ""
}

// Update implements [tea.Model]. Handled messages:
//   - login result: clears the submitting state, opens the dashboard on
//     success or shows the error;
//   - esc: back to the menu;
//   - enter: validates the form and starts the login.
//
// Other keys go to the focused input.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(opDoneMsg); ok && done.op == session.OpLogin {
		m.submitting = false
		if done.err != nil {
			m.errMsg = done.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return NavigateTo{Page: pageDashboard} }
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case key.Matches(keyMsg, keys.enter):
			return m, m.submit()
		}
	}

	return m, m.form.update(msg)
}

func (m *LoginModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	creds := models.Credentials{
		Email:    m.form.value(loginEmail),
		Password: m.form.raw(loginPassword),
	}
	if m.errMsg = m.env.validate(creds); m.errMsg != "" {
		return nil
	}

	m.submitting = true
	return m.env.run(session.OpLogin, func(ctx context.Context) error {
		return m.env.session.Login(ctx, creds.Email, creds.Password)
	})
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	b.WriteString(formStatus("Log in", m.submitting, m.errMsg))

	return renderPage("LOG IN", strings.TrimRight(b.String(), "\n"), keys.esc, keys.tab, keys.enter)
}
