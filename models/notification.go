package models

// NotificationVariant selects how a notification is rendered.
type NotificationVariant string

const (
	// NotificationDefault is a neutral or success message.
	NotificationDefault NotificationVariant = "default"
	// NotificationDestructive reports a failure.
	NotificationDestructive NotificationVariant = "destructive"
)

// Notification is a short message for the user about the outcome of a
// session operation.
type Notification struct {
	Title       string
	Description string
	Variant     NotificationVariant
}
