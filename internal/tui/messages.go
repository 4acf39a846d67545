package tui

import "github.com/MKhiriev/go-client-desk/models"

// Page names known to [RootModel].
const (
	pageMenu      = "menu"
	pageLogin     = "login"
	pageSignup    = "signup"
	pageDashboard = "dashboard"
	pageClient    = "client"
	pageProfile   = "profile"
)

// NavigateTo switches the active page. Payload, when set, is delivered to
// the new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload any
}

// opDoneMsg reports that a session operation returned.
type opDoneMsg struct {
	op  string
	err error
}

// toastMsg carries a session notification.
type toastMsg models.Notification

type clearToastMsg struct {
	seq int
}

// clientsRefreshedMsg is sent after a background reload of the client list.
type clientsRefreshedMsg struct{}

type copiedMsg struct {
	text string
	err  error
}
