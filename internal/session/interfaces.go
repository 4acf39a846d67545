package session

import (
	"context"

	"github.com/MKhiriev/go-client-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/notifier_mock.go -package=mock

// Notifier receives the outcome of every user-initiated session operation.
// It is the UI notification surface: implementations render the message and
// must not call back into the [Store].
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// NotifierFunc adapts a plain function to [Notifier].
type NotifierFunc func(ctx context.Context, n models.Notification)

func (f NotifierFunc) Notify(ctx context.Context, n models.Notification) {
	f(ctx, n)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, models.Notification) {}
