package driving

import "github.com/vimed-graphrag/vimed-cli/internal/core/domain"

// Notifier holds the single active notification.
type Notifier interface {
	// Notify replaces the active notification.
	Notify(kind domain.NotificationKind, message string)

	// Current returns the active notification, if any.
	Current() (domain.Notification, bool)

	// Dismiss clears the active notification.
	Dismiss()

	// Subscribe registers fn to be called after every change.
	Subscribe(fn func()) (unsubscribe func())
}
