// Package toast renders the active notification.
package toast

import (
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/styles"
	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

// Toast displays a single notification.
type Toast struct {
	styles *styles.Styles
	note   domain.Notification
	shown  bool
}

// New creates an empty toast.
func New(s *styles.Styles) *Toast {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Toast{styles: s}
}

// Show sets the notification to display.
func (t *Toast) Show(n domain.Notification) {
	t.note = n
	t.shown = true
}

// Hide clears the toast.
func (t *Toast) Hide() {
	t.note = domain.Notification{}
	t.shown = false
}

// Visible reports whether a notification is shown.
func (t *Toast) Visible() bool {
	return t.shown
}

// View renders the notification, or nothing when hidden.
func (t *Toast) View() string {
	if !t.shown {
		return ""
	}
	if t.note.IsError() {
		return t.styles.ToastError.Render("✗ " + t.note.Message)
	}
	return t.styles.ToastSuccess.Render("✓ " + t.note.Message)
}
