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
	registerName = iota
	registerEmail
	registerPassword
	registerRepeat
)

// RegisterModel is the Bubble Tea model for the signup screen. It renders
// name, email, password and password confirmation inputs and runs
// [session.Store.Signup] on submit. A successful signup is already logged in,
// so the model opens the dashboard.
type RegisterModel struct {
	env *env

	form       form
	submitting bool
	errMsg     string
}

// NewRegisterModel creates a [RegisterModel] with the name input focused.
func NewRegisterModel(e *env) *RegisterModel {
	return &RegisterModel{
		env: e,
		form: newForm(
			field{label: "Name", placeholder: "Jane Doe"},
			field{label: "Email", placeholder: "you@example.com"},
			field{label: "Password", placeholder: "at least 6 characters", secret: true},
			field{label: "Repeat password", placeholder: "repeat password", secret: true},
		),
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation.
func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) reset() {
	m.form.reset()
	m.submitting = false
	m.errMsg = ""
}

// Update implements [tea.Model]. Handled messages:
//   - signup result: clears the submitting state, opens the dashboard on
//     success or shows the error;
//   - esc: back to the menu;
//   - enter: validates the form (passwords must match) and starts the
//     signup.
//
// Other keys go to the focused input.
func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(opDoneMsg); ok && done.op == session.OpSignup {
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

func (m *RegisterModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	reg := models.Registration{
		Name:     m.form.value(registerName),
		Email:    m.form.value(registerEmail),
		Password: m.form.raw(registerPassword),
	}
	if m.errMsg = m.env.validate(reg); m.errMsg != "" {
		return nil
	}
	if reg.Password != m.form.raw(registerRepeat) {
		m.errMsg = "Passwords do not match"
		return nil
	}

	m.submitting = true
	return m.env.run(session.OpSignup, func(ctx context.Context) error {
		return m.env.session.Signup(ctx, reg.Name, reg.Email, reg.Password)
	})
}

// View implements [tea.Model].
func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	b.WriteString(formStatus("Sign up", m.submitting, m.errMsg))

	return renderPage("SIGN UP", strings.TrimRight(b.String(), "\n"), keys.esc, keys.tab, keys.enter)
}
