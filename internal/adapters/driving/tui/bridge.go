package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/messages"
)

// subscriber is implemented by every workflow and the notifier.
type subscriber interface {
	Subscribe(fn func()) (unsubscribe func())
}

// bridge turns observer callbacks, which may fire on any goroutine, into
// WorkflowChanged messages for the Update loop. Signals are coalesced.
type bridge struct {
	ch     chan struct{}
	done   chan struct{}
	once   sync.Once
	unsubs []func()
}

func newBridge(sources ...subscriber) *bridge {
	b := &bridge{
		ch:   make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	for _, s := range sources {
		b.unsubs = append(b.unsubs, s.Subscribe(b.signal))
	}
	return b
}

func (b *bridge) signal() {
	select {
	case b.ch <- struct{}{}:
	default:
	}
}

// listen waits for the next signal. It must be re-issued after every
// WorkflowChanged it produces.
func (b *bridge) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.ch:
			return messages.WorkflowChanged{}
		case <-b.done:
			return nil
		}
	}
}

// close unsubscribes from all sources and releases a pending listen.
func (b *bridge) close() {
	b.once.Do(func() {
		for _, unsub := range b.unsubs {
			unsub()
		}
		close(b.done)
	})
}
