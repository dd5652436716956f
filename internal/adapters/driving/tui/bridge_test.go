package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/messages"
	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/services"
)

func TestBridge_DeliversChange(t *testing.T) {
	notifier := services.NewNotifier()
	b := newBridge(notifier)
	defer b.close()

	notifier.Notify(domain.NotificationSuccess, "done")

	assert.Equal(t, messages.WorkflowChanged{}, b.listen()())
}

func TestBridge_CoalescesSignals(t *testing.T) {
	query := services.NewQueryWorkflow(&stubBackend{}, 5)
	b := newBridge(query)
	defer b.close()

	query.SetInput("a")
	query.SetInput("ab")
	query.SetInput("abc")

	assert.Len(t, b.ch, 1)
	assert.Equal(t, messages.WorkflowChanged{}, b.listen()())
	assert.Empty(t, b.ch)
}

func TestBridge_CloseReleasesListenAndUnsubscribes(t *testing.T) {
	query := services.NewQueryWorkflow(&stubBackend{}, 5)
	b := newBridge(query)

	b.close()
	b.close()
	query.SetInput("after close")

	assert.Nil(t, b.listen()())
	assert.Empty(t, b.ch)
}
