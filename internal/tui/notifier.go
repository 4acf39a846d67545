package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-client-desk/models"
)

// Notifier forwards session notifications to the running program as
// toasts. Notifications sent while no program runs are dropped.
type Notifier struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewNotifier returns a notifier that is not attached to any program yet.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Notify implements session.Notifier.
func (n *Notifier) Notify(_ context.Context, notification models.Notification) {
	n.send(toastMsg(notification))
}

func (n *Notifier) send(msg tea.Msg) {
	n.mu.Lock()
	p := n.program
	n.mu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}

func (n *Notifier) attach(p *tea.Program) {
	n.mu.Lock()
	n.program = p
	n.mu.Unlock()
}

func (n *Notifier) detach() {
	n.attach(nil)
}
