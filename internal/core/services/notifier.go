package services

import (
	"sync"
	"time"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driving"
)

// Ensure Notifier implements the interface.
var _ driving.Notifier = (*Notifier)(nil)

// Timer is the part of *time.Timer the notifier needs.
type Timer interface {
	Stop() bool
}

// Notifier holds at most one active notification and clears it after
// domain.NotificationTTL.
type Notifier struct {
	mu        sync.Mutex
	current   domain.Notification
	active    bool
	timer     Timer
	gen       uint64
	now       func() time.Time
	afterFunc func(time.Duration, func()) Timer
	observers observers
}

// NewNotifier creates a notifier backed by the system clock.
func NewNotifier() *Notifier {
	return &Notifier{
		now: time.Now,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
}

// WithClock replaces the clock and timer factory. Used by tests.
func (n *Notifier) WithClock(now func() time.Time, afterFunc func(time.Duration, func()) Timer) *Notifier {
	n.now = now
	n.afterFunc = afterFunc
	return n
}

// Notify replaces the active notification and restarts the expiry timer.
func (n *Notifier) Notify(kind domain.NotificationKind, message string) {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.current = domain.NewNotification(kind, message, n.now())
	n.active = true
	n.timer = n.afterFunc(domain.NotificationTTL, func() { n.expire(gen) })
	n.mu.Unlock()

	n.observers.notify()
}

// Current returns the active notification, if any.
func (n *Notifier) Current() (domain.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.active
}

// Dismiss clears the active notification.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	if !n.active {
		n.mu.Unlock()
		return
	}
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.current = domain.Notification{}
	n.active = false
	n.mu.Unlock()

	n.observers.notify()
}

// Subscribe registers fn to be called after every change.
func (n *Notifier) Subscribe(fn func()) func() {
	return n.observers.subscribe(fn)
}

// expire clears the notification scheduled under gen. A timer that fires
// after being replaced is a no-op.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen || !n.active {
		n.mu.Unlock()
		return
	}
	n.current = domain.Notification{}
	n.active = false
	n.timer = nil
	n.mu.Unlock()

	n.observers.notify()
}
