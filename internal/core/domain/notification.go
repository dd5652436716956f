package domain

import "time"

// NotificationTTL is how long a notification stays visible.
const NotificationTTL = 5 * time.Second

// NotificationKind classifies a notification.
type NotificationKind string

const (
	// NotificationSuccess reports a completed action.
	NotificationSuccess NotificationKind = "success"

	// NotificationError reports a rejected or failed action.
	NotificationError NotificationKind = "error"
)

// String returns the string representation.
func (k NotificationKind) String() string {
	return string(k)
}

// Notification is an ephemeral message shown to the user.
type Notification struct {
	// Kind is success or error.
	Kind NotificationKind

	// Message is the text shown to the user.
	Message string

	// Expiry is when the notification disappears.
	Expiry time.Time
}

// NewNotification creates a notification expiring NotificationTTL after now.
func NewNotification(kind NotificationKind, message string, now time.Time) Notification {
	return Notification{
		Kind:    kind,
		Message: message,
		Expiry:  now.Add(NotificationTTL),
	}
}

// ActiveAt reports whether the notification is still visible at t.
func (n Notification) ActiveAt(t time.Time) bool {
	return t.Before(n.Expiry)
}

// IsError reports whether this is an error notification.
func (n Notification) IsError() bool {
	return n.Kind == NotificationError
}
