package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

func TestNotifier_Notify(t *testing.T) {
	clock := newFakeClock()
	n := newTestNotifier(clock)

	n.Notify(domain.NotificationSuccess, "done")

	current, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, domain.NotificationSuccess, current.Kind)
	assert.Equal(t, "done", current.Message)
	assert.Equal(t, clock.now.Add(domain.NotificationTTL), current.Expiry)
	require.Len(t, clock.timers, 1)
	assert.Equal(t, domain.NotificationTTL, clock.last().d)
}

func TestNotifier_ExpiresAfterTTL(t *testing.T) {
	clock := newFakeClock()
	n := newTestNotifier(clock)
	changes := 0
	n.Subscribe(func() { changes++ })

	n.Notify(domain.NotificationError, "boom")
	clock.last().fire()

	_, ok := n.Current()
	assert.False(t, ok)
	assert.Equal(t, 2, changes)
}

func TestNotifier_ReplaceStopsPreviousTimer(t *testing.T) {
	clock := newFakeClock()
	n := newTestNotifier(clock)

	n.Notify(domain.NotificationError, "first")
	first := clock.last()
	n.Notify(domain.NotificationSuccess, "second")

	assert.True(t, first.stopped)

	// A replaced timer that fires anyway must not clear the new notification.
	first.fire()
	current, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "second", current.Message)

	clock.last().fire()
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestNotifier_Dismiss(t *testing.T) {
	clock := newFakeClock()
	n := newTestNotifier(clock)

	n.Notify(domain.NotificationSuccess, "ok")
	timer := clock.last()
	n.Dismiss()

	_, ok := n.Current()
	assert.False(t, ok)
	assert.True(t, timer.stopped)

	timer.fire()
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestNotifier_DismissWhenEmpty(t *testing.T) {
	n := newTestNotifier(newFakeClock())
	changes := 0
	n.Subscribe(func() { changes++ })

	n.Dismiss()

	assert.Zero(t, changes)
}

func TestNotifier_RealTimer(t *testing.T) {
	n := NewNotifier()
	n.Notify(domain.NotificationSuccess, "ok")
	defer n.Dismiss()

	current, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "ok", current.Message)
}
