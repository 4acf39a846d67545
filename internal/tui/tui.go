// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the interactive terminal front end of client-desk, built on
// Bubble Tea.
//
// The UI never keeps its own copy of the session: every view reads the
// [session.Store] directly and every action runs one session operation in a
// [tea.Cmd]. Outcomes reach the screen twice, as an operation result
// message for the page that started it and as a toast delivered by
// [Notifier].
package tui

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/session"
	"github.com/MKhiriev/go-client-desk/internal/validators"
	"github.com/MKhiriev/go-client-desk/models"
)

// TUI runs the interactive program over a session.
type TUI struct {
	session   *session.Store
	notifier  *Notifier
	validator validators.Validator
	buildInfo models.AppBuildInfo
	timeout   time.Duration
	log       *logger.Logger

	options []tea.ProgramOption
}

// New creates the UI. notifier must be the one the session was created with,
// otherwise no toasts are shown. timeout bounds every session operation
// started from the UI; zero means no bound.
func New(sess *session.Store, notifier *Notifier, buildInfo models.AppBuildInfo, timeout time.Duration, log *logger.Logger) *TUI {
	if notifier == nil {
		notifier = NewNotifier()
	}
	if log == nil {
		log = logger.Nop()
	}

	return &TUI{
		session:   sess,
		notifier:  notifier,
		validator: validators.NewFormValidator(),
		buildInfo: buildInfo,
		timeout:   timeout,
		log:       log,
		options:   []tea.ProgramOption{tea.WithAltScreen()},
	}
}

// IsTTY reports whether both standard streams are terminals.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.options...)
	p := tea.NewProgram(newRootModel(t.env(ctx)), opts...)

	t.notifier.attach(p)
	defer t.notifier.detach()

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Refresh reloads the client list of an authenticated session and redraws
// the screen. It does nothing while logged out.
func (t *TUI) Refresh(ctx context.Context) error {
	if !t.session.IsAuthenticated() {
		return nil
	}

	err := t.session.FetchClients(ctx)
	t.notifier.send(clientsRefreshedMsg{})
	return err
}

func (t *TUI) env(ctx context.Context) *env {
	return &env{
		ctx:       ctx,
		session:   t.session,
		validator: t.validator,
		buildInfo: t.buildInfo,
		timeout:   t.timeout,
		log:       t.log,
	}
}

// env is what every page needs to run session operations.
type env struct {
	ctx       context.Context
	session   *session.Store
	validator validators.Validator
	buildInfo models.AppBuildInfo
	timeout   time.Duration
	log       *logger.Logger
}

// run executes fn in a command and reports its outcome as an [opDoneMsg].
func (e *env) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := e.requestContext()
		defer cancel()

		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (e *env) requestContext() (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(e.ctx)
	}
	return context.WithTimeout(e.ctx, e.timeout)
}

func (e *env) validate(obj any) string {
	if err := e.validator.Validate(e.ctx, obj); err != nil {
		return capitalize(err.Error())
	}
	return ""
}
