package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-client-desk/internal/adapter"
	"github.com/MKhiriev/go-client-desk/internal/config"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/mock"
	"github.com/MKhiriev/go-client-desk/internal/session"
	"github.com/MKhiriev/go-client-desk/internal/store"
	"github.com/MKhiriev/go-client-desk/internal/validators"
	"github.com/MKhiriev/go-client-desk/models"
)

func newTestEnv(t *testing.T) *env {
	t.Helper()
	storage := store.NewMemoryStorage()
	backend, err := adapter.NewLocalBackend(context.Background(), storage, config.App{
		TokenIssuer:   "client-desk-test",
		TokenDuration: time.Hour,
	}, logger.Nop(), adapter.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)

	return &env{
		ctx:       context.Background(),
		session:   session.New(backend, storage, nil, logger.Nop()),
		validator: validators.NewFormValidator(),
		buildInfo: models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"),
		timeout:   5 * time.Second,
		log:       logger.Nop(),
	}
}

func signedUp(t *testing.T, e *env) {
	t.Helper()
	require.NoError(t, e.session.Signup(context.Background(), "Alice", "alice@x.com", "secret1"))
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func typeInto(m tea.Model, s string) tea.Model {
	m, _ = m.Update(keyRunes(s))
	return m
}

// opResult runs cmd and returns the operation result it produced, looking
// inside batches.
func opResult(t *testing.T, cmd tea.Cmd) opDoneMsg {
	t.Helper()
	require.NotNil(t, cmd)

	switch msg := cmd().(type) {
	case opDoneMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if done, ok := c().(opDoneMsg); ok {
				return done
			}
		}
	}
	t.Fatal("command produced no operation result")
	return opDoneMsg{}
}

func navigation(t *testing.T, cmd tea.Cmd) NavigateTo {
	t.Helper()
	require.NotNil(t, cmd)
	nav, ok := cmd().(NavigateTo)
	require.True(t, ok, "expected a navigation command")
	return nav
}

func TestLoginModel_ValidatesBeforeCallingSession(t *testing.T) {
	e := newTestEnv(t)
	m := NewLoginModel(e)

	_, cmd := m.Update(keyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, "Email is required", m.errMsg)
	assert.False(t, m.submitting)
}

func TestLoginModel_Success(t *testing.T) {
	e := newTestEnv(t)
	signedUp(t, e)
	e.session.Logout(context.Background())

	m := NewLoginModel(e)
	typeInto(m, "alice@x.com")
	m.Update(keyTab)
	typeInto(m, "secret1")

	_, cmd := m.Update(keyEnter)
	assert.True(t, m.submitting)

	done := opResult(t, cmd)
	assert.Equal(t, session.OpLogin, done.op)
	require.NoError(t, done.err)
	assert.True(t, e.session.IsAuthenticated())

	_, cmd = m.Update(done)
	assert.False(t, m.submitting)
	assert.Equal(t, pageDashboard, navigation(t, cmd).Page)
}

func TestLoginModel_WrongPasswordShowsError(t *testing.T) {
	e := newTestEnv(t)
	signedUp(t, e)
	e.session.Logout(context.Background())

	m := NewLoginModel(e)
	typeInto(m, "alice@x.com")
	m.Update(keyTab)
	typeInto(m, "wrong-password")

	_, cmd := m.Update(keyEnter)
	done := opResult(t, cmd)
	require.Error(t, done.err)

	_, cmd = m.Update(done)
	assert.Nil(t, cmd)
	assert.Equal(t, "Invalid email or password", m.errMsg)
	assert.False(t, e.session.IsAuthenticated())
}

func TestLoginModel_EscGoesBackAndResetClears(t *testing.T) {
	e := newTestEnv(t)
	m := NewLoginModel(e)
	typeInto(m, "alice@x.com")

	_, cmd := m.Update(keyEsc)
	assert.Equal(t, pageMenu, navigation(t, cmd).Page)

	m.reset()
	assert.Empty(t, m.form.value(loginEmail))
}

func TestRegisterModel_PasswordsMustMatch(t *testing.T) {
	e := newTestEnv(t)
	m := NewRegisterModel(e)
	typeInto(m, "Alice")
	m.Update(keyTab)
	typeInto(m, "alice@x.com")
	m.Update(keyTab)
	typeInto(m, "secret1")
	m.Update(keyTab)
	typeInto(m, "secret2")

	_, cmd := m.Update(keyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, "Passwords do not match", m.errMsg)
}

func TestRegisterModel_Success(t *testing.T) {
	e := newTestEnv(t)
	m := NewRegisterModel(e)
	typeInto(m, "Alice")
	m.Update(keyTab)
	typeInto(m, "alice@x.com")
	m.Update(keyTab)
	typeInto(m, "secret1")
	m.Update(keyTab)
	typeInto(m, "secret1")

	_, cmd := m.Update(keyEnter)
	done := opResult(t, cmd)
	require.NoError(t, done.err)

	_, cmd = m.Update(done)
	assert.Equal(t, pageDashboard, navigation(t, cmd).Page)
	assert.Equal(t, "Alice", e.session.User().Name)
}

func TestRootModel_StartPage(t *testing.T) {
	e := newTestEnv(t)
	assert.Equal(t, pageMenu, newRootModel(e).current)

	signedUp(t, e)
	assert.Equal(t, pageDashboard, newRootModel(e).current)
}

func TestRootModel_MenuNavigation(t *testing.T) {
	e := newTestEnv(t)
	var root tea.Model = newRootModel(e)

	root, _ = root.Update(tea.KeyMsg{Type: tea.KeyDown})
	root, cmd := root.Update(keyEnter)
	nav := navigation(t, cmd)
	assert.Equal(t, pageSignup, nav.Page)

	root, _ = root.Update(nav)
	assert.Equal(t, pageSignup, root.(RootModel).current)
	assert.Contains(t, root.View(), "SIGN UP")

	root, _ = root.Update(NavigateTo{Page: "missing"})
	assert.Equal(t, pageSignup, root.(RootModel).current)
}

func TestRootModel_BuildInfoOnMenuOnly(t *testing.T) {
	e := newTestEnv(t)
	var root tea.Model = newRootModel(e)

	root, _ = root.Update(keyRunes("v"))
	assert.Contains(t, root.View(), "Version: 1.2.3")
	assert.Contains(t, root.View(), "Commit: abc123")

	root, _ = root.Update(keyEsc)
	assert.NotContains(t, root.View(), "Version: 1.2.3")

	root, _ = root.Update(NavigateTo{Page: pageLogin})
	root, _ = root.Update(keyRunes("v"))
	assert.NotContains(t, root.View(), "Version: 1.2.3")
}

func TestRootModel_CtrlCQuits(t *testing.T) {
	var root tea.Model = newRootModel(newTestEnv(t))

	_, cmd := root.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRootModel_Toasts(t *testing.T) {
	var root tea.Model = newRootModel(newTestEnv(t))

	root, cmd := root.Update(toastMsg{Title: "Login failed", Description: "Invalid email or password", Variant: models.NotificationDestructive})
	assert.NotNil(t, cmd)
	assert.Contains(t, root.View(), "Login failed")
	assert.Contains(t, root.View(), "Invalid email or password")

	root, _ = root.Update(toastMsg{Title: "Logged out"})
	root, _ = root.Update(clearToastMsg{seq: 1})
	assert.Contains(t, root.View(), "Logged out", "a stale clear must not hide a newer toast")

	root, _ = root.Update(clearToastMsg{seq: 2})
	assert.NotContains(t, root.View(), "Logged out")
}

func TestRootModel_LogoutReturnsToMenu(t *testing.T) {
	e := newTestEnv(t)
	signedUp(t, e)
	var root tea.Model = newRootModel(e)

	root, cmd := root.Update(keyRunes("l"))
	done := opResult(t, cmd)
	assert.Equal(t, session.OpLogout, done.op)
	assert.False(t, e.session.IsAuthenticated())

	root, _ = root.Update(done)
	assert.Equal(t, pageMenu, root.(RootModel).current)
}

func TestDashboardModel_ListsClients(t *testing.T) {
	e := newTestEnv(t)
	signedUp(t, e)
	_, err := e.session.AddClient(context.Background(), models.NewClient{Name: "Acme Buyer", Email: "buyer@acme.com", Company: "Acme", Status: models.ClientActive})
	require.NoError(t, err)

	m := NewDashboardModel(e)
	done := opResult(t, m.Init())
	require.NoError(t, done.err)
	m.Update(done)

	view := m.View()
	assert.Contains(t, view, "Signed in as Alice <alice@x.com>")
	assert.Contains(t, view, "Acme Buyer")
	assert.Contains(t, view, "buyer@acme.com")
	assert.False(t, m.busy)
}

func TestDashboardModel_EmptyList(t *testing.T) {
	e := newTestEnv(t)
	signedUp(t, e)

	assert.Contains(t, NewDashboardModel(e).View(), "No clients yet")
}

func TestDashboardModel_CopyEmail(t *testing.T) {
	e := newTestEnv(t)
	signedUp(t, e)
	for _, c := range []models.NewClient{
		{Name: "A", Email: "a@x.com", Company: "C", Status: models.ClientActive},
		{Name: "B", Email: "b@x.com", Company: "C", Status: models.ClientInactive},
	} {
		_, err := e.session.AddClient(context.Background(), c)
		require.NoError(t, err)
	}

	var copied string
	m := NewDashboardModel(e)
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(keyRunes("c"))
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, "b@x.com", copied)
	assert.Contains(t, m.View(), "Copied b@x.com")

	m.copyText = func(string) error { return errors.New("no clipboard") }
	_, cmd = m.Update(keyRunes("c"))
	m.Update(cmd())
	assert.Contains(t, m.View(), "Could not copy to clipboard")
}

func TestDashboardModel_CursorStaysInRange(t *testing.T) {
	e := newTestEnv(t)
	signedUp(t, e)
	m := NewDashboardModel(e)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(clientsRefreshedMsg{})

	assert.Equal(t, 0, m.idx)
}

func TestClientFormModel_AddsClient(t *testing.T) {
	e := newTestEnv(t)
	signedUp(t, e)

	m := NewClientFormModel(e)
	typeInto(m, "Jane")
	m.Update(keyTab)
	typeInto(m, "jane@corp.com")
	m.Update(keyTab)
	typeInto(m, "Corp")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, models.ClientInactive, m.status)

	_, cmd := m.Update(keyEnter)
	done := opResult(t, cmd)
	require.NoError(t, done.err)

	_, cmd = m.Update(done)
	assert.Equal(t, pageDashboard, navigation(t, cmd).Page)

	clients := e.session.Clients()
	require.Len(t, clients, 1)
	assert.Equal(t, "Jane", clients[0].Name)
	assert.Equal(t, models.ClientInactive, clients[0].Status)

	m.reset()
	assert.Equal(t, models.ClientActive, m.status)
}

func TestClientFormModel_InvalidEmail(t *testing.T) {
	e := newTestEnv(t)
	signedUp(t, e)

	m := NewClientFormModel(e)
	typeInto(m, "Jane")
	m.Update(keyTab)
	typeInto(m, "not-an-email")
	m.Update(keyTab)
	typeInto(m, "Corp")

	_, cmd := m.Update(keyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, "Email is not a valid email address", m.errMsg)
	assert.Empty(t, e.session.Clients())
}

func TestProfileModel_SendsOnlyChangedFields(t *testing.T) {
	e := newTestEnv(t)
	signedUp(t, e)

	m := NewProfileModel(e)
	m.reset()
	assert.Equal(t, "Alice", m.form.value(profileName))
	assert.Equal(t, "alice@x.com", m.form.value(profileEmail))

	p := m.patch()
	assert.True(t, p.IsEmpty())

	_, cmd := m.Update(keyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, "At least one field must be provided for update", m.errMsg)

	m.form.setValue(profileName, "Alice Cooper")
	p = m.patch()
	require.NotNil(t, p.Name)
	assert.Nil(t, p.Email)

	_, cmd = m.Update(keyEnter)
	done := opResult(t, cmd)
	require.NoError(t, done.err)
	assert.Equal(t, "Alice Cooper", e.session.User().Name)
	assert.Equal(t, "alice@x.com", e.session.User().Email)
}

func TestTUI_RefreshSkipsLoggedOutSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockBackend(ctrl)

	ui := New(session.New(backend, store.NewMemoryStorage(), nil, logger.Nop()), nil, models.NewAppBuildInfo("", "", ""), time.Second, nil)

	assert.NoError(t, ui.Refresh(context.Background()))
}

func TestTUI_RefreshFetchesClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockBackend(ctrl)
	storage := store.NewMemoryStorage()
	require.NoError(t, storage.Set(context.Background(), session.TokenKey, "tok"))

	backend.EXPECT().FetchProfile(gomock.Any(), "tok").Return(models.User{ID: "u1", Name: "A", Email: "a@x.com"}, nil)
	backend.EXPECT().ListClients(gomock.Any(), "tok").Return([]models.Client{{ID: "c1", Name: "Z"}}, nil)

	sess := session.New(backend, storage, nil, logger.Nop())
	require.NoError(t, sess.Restore(context.Background()))

	ui := New(sess, NewNotifier(), models.NewAppBuildInfo("", "", ""), time.Second, nil)
	require.NoError(t, ui.Refresh(context.Background()))
	assert.Len(t, sess.Clients(), 1)
}

func TestNotifier_DropsWithoutProgram(t *testing.T) {
	n := NewNotifier()

	assert.NotPanics(t, func() {
		n.Notify(context.Background(), models.Notification{Title: "Logged out"})
	})
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "Email is required", capitalize("email is required"))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "abcdefg", fitText("abcdefg", 10))
	assert.Equal(t, "abc...", fitText("abcdefghij", 6))
	assert.Equal(t, "ab", fitText("abcdef", 2))
}
