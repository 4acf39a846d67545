package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-client-desk/models"
)

// toastTTL is how long a toast stays on screen.
const toastTTL = 4 * time.Second

// resetter is implemented by pages that clear their input when opened.
type resetter interface {
	reset()
}

// RootModel is the TUI router:
//  1. keeps the active page;
//  2. handles global quit and the build info window;
//  3. handles NavigateTo messages;
//  4. shows toasts;
//  5. delegates all other messages to the active page.
type RootModel struct {
	env     *env
	pages   map[string]tea.Model
	current string

	toast    *models.Notification
	toastSeq int

	showBuildInfo bool
}

func newRootModel(e *env) RootModel {
	pages := map[string]tea.Model{
		pageMenu:      NewMenuModel(),
		pageLogin:     NewLoginModel(e),
		pageSignup:    NewRegisterModel(e),
		pageDashboard: NewDashboardModel(e),
		pageClient:    NewClientFormModel(e),
		pageProfile:   NewProfileModel(e),
	}

	start := pageMenu
	if e.session.IsAuthenticated() {
		start = pageDashboard
	}

	return RootModel{
		env:     e,
		pages:   pages,
		current: start,
	}
}

func (r RootModel) Init() tea.Cmd {
	return r.pages[r.current].Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.forceQuit) {
			return r, tea.Quit
		}
		if r.showBuildInfo {
			if key.Matches(msg, keys.esc, keys.version) {
				r.showBuildInfo = false
			}
			return r, nil
		}
		if r.current == pageMenu && key.Matches(msg, keys.version) {
			r.showBuildInfo = true
			return r, nil
		}

	case NavigateTo:
		return r.navigate(msg)

	case toastMsg:
		n := models.Notification(msg)
		r.toast = &n
		r.toastSeq++
		seq := r.toastSeq
		return r, tea.Tick(toastTTL, func(time.Time) tea.Msg { return clearToastMsg{seq: seq} })

	case clearToastMsg:
		if msg.seq == r.toastSeq {
			r.toast = nil
		}
		return r, nil
	}

	page, ok := r.pages[r.current]
	if !ok {
		return r, nil
	}
	updated, cmd := page.Update(msg)
	r.pages[r.current] = updated

	// A page that needs a session falls back to the menu once it is gone.
	if r.requiresSession() && !r.env.session.IsAuthenticated() && !r.env.session.IsLoading() {
		if _, isOp := msg.(opDoneMsg); isOp {
			return r.navigate(NavigateTo{Page: pageMenu})
		}
	}

	return r, cmd
}

func (r RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	next, exists := r.pages[nav.Page]
	if !exists {
		return r, nil
	}

	r.showBuildInfo = false
	r.current = nav.Page
	if p, ok := next.(resetter); ok {
		p.reset()
	}

	if nav.Payload != nil {
		return r, func() tea.Msg { return nav.Payload }
	}
	return r, next.Init()
}

func (r RootModel) requiresSession() bool {
	switch r.current {
	case pageDashboard, pageClient, pageProfile:
		return true
	default:
		return false
	}
}

func (r RootModel) View() string {
	var body string
	switch {
	case r.showBuildInfo:
		body = renderBuildInfoWindow(r.env.buildInfo)
	case r.pages[r.current] != nil:
		body = r.pages[r.current].View()
	default:
		body = renderPage("CLIENT DESK", "")
	}

	if r.toast != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", renderToast(*r.toast))
	}
	return appStyle.Render(body)
}

func renderToast(n models.Notification) string {
	style := toastStyle
	if n.Variant == models.NotificationDestructive {
		style = destructiveToastStyle
	}

	content := lipgloss.NewStyle().Bold(true).Render(n.Title)
	if n.Description != "" {
		content += "\n" + n.Description
	}
	return style.Render(content)
}
