package driving

import (
	"context"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

// QueryRequest is an outstanding question.
type QueryRequest struct {
	// ID correlates the request in logs.
	ID string

	// Text is the trimmed question.
	Text string

	// TopK is the number of passages requested.
	TopK int
}

// QueryWorkflow manages the question/answer conversation.
type QueryWorkflow interface {
	// SetInput replaces the input buffer.
	SetInput(text string)

	// Input returns the input buffer.
	Input() string

	// Begin records the user message and enters AwaitingResponse.
	// Returns domain.ErrEmptyQuery or domain.ErrQueryInFlight without changing state.
	Begin(text string) (QueryRequest, error)

	// Execute performs the backend call for req. It does not touch workflow state.
	Execute(ctx context.Context, req QueryRequest) (*domain.QueryAnswer, error)

	// Settle appends the assistant message for the outcome and returns to Idle.
	Settle(req QueryRequest, answer *domain.QueryAnswer, err error)

	// Submit runs Begin, Execute and Settle in sequence.
	Submit(ctx context.Context, text string) error

	// State returns a snapshot of the conversation.
	State() domain.ConversationState

	// Reset clears the conversation. Ignored while a request is outstanding.
	Reset() bool

	// Subscribe registers fn to be called after every state change.
	Subscribe(fn func()) (unsubscribe func())
}
