package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driven"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driving"
	"github.com/vimed-graphrag/vimed-cli/internal/logger"
)

// Ensure QueryWorkflow implements the interface.
var _ driving.QueryWorkflow = (*QueryWorkflow)(nil)

// QueryWorkflow runs the question/answer conversation.
//
// States are Idle and AwaitingResponse. At most one question is outstanding.
type QueryWorkflow struct {
	backend driven.Backend
	topK    int
	now     func() time.Time

	mu        sync.Mutex
	input     string
	messages  []domain.ConversationMessage
	pending   bool
	observers observers
}

// NewQueryWorkflow creates a query workflow. A non-positive topK uses
// domain.DefaultTopK.
func NewQueryWorkflow(backend driven.Backend, topK int) *QueryWorkflow {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &QueryWorkflow{
		backend: backend,
		topK:    topK,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for message timestamps.
func (w *QueryWorkflow) WithClock(now func() time.Time) *QueryWorkflow {
	w.now = now
	return w
}

// SetInput replaces the input buffer.
func (w *QueryWorkflow) SetInput(text string) {
	w.mu.Lock()
	changed := w.input != text
	w.input = text
	w.mu.Unlock()

	if changed {
		w.observers.notify()
	}
}

// Input returns the input buffer.
func (w *QueryWorkflow) Input() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// Begin records the user message and enters AwaitingResponse.
func (w *QueryWorkflow) Begin(text string) (driving.QueryRequest, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return driving.QueryRequest{}, domain.ErrEmptyQuery
	}

	w.mu.Lock()
	if w.pending {
		w.mu.Unlock()
		return driving.QueryRequest{}, domain.ErrQueryInFlight
	}
	w.messages = append(w.messages, domain.NewConversationMessage(domain.RoleUser, trimmed, w.now()))
	w.input = ""
	w.pending = true
	req := driving.QueryRequest{
		ID:   uuid.NewString(),
		Text: trimmed,
		TopK: w.topK,
	}
	w.mu.Unlock()

	logger.Debug("query begun", zap.String("request_id", req.ID), zap.Int("top_k", req.TopK))
	w.observers.notify()
	return req, nil
}

// Execute performs the backend call for req.
func (w *QueryWorkflow) Execute(ctx context.Context, req driving.QueryRequest) (*domain.QueryAnswer, error) {
	return w.backend.SubmitQuery(ctx, req.Text, req.TopK)
}

// Settle appends exactly one assistant message and returns to Idle.
// The outcome is applied regardless of which request it belongs to.
func (w *QueryWorkflow) Settle(req driving.QueryRequest, answer *domain.QueryAnswer, err error) {
	var content string
	if err != nil {
		logger.Warn("query failed", zap.String("request_id", req.ID), zap.Error(err))
		content = domain.FormatQueryFailure(err)
	} else {
		var results []string
		if answer != nil {
			results = answer.Results
		}
		logger.Debug("query answered", zap.String("request_id", req.ID), zap.Int("results", len(results)))
		content = domain.FormatAnswer(results)
	}

	w.mu.Lock()
	w.messages = append(w.messages, domain.NewConversationMessage(domain.RoleAssistant, content, w.now()))
	w.pending = false
	w.mu.Unlock()

	w.observers.notify()
}

// Submit runs Begin, Execute and Settle in sequence. Backend errors are
// recorded in the conversation and also returned.
func (w *QueryWorkflow) Submit(ctx context.Context, text string) error {
	req, err := w.Begin(text)
	if err != nil {
		return err
	}
	answer, err := w.Execute(ctx, req)
	w.Settle(req, answer, err)
	return err
}

// State returns a snapshot of the conversation.
func (w *QueryWorkflow) State() domain.ConversationState {
	w.mu.Lock()
	defer w.mu.Unlock()

	msgs := make([]domain.ConversationMessage, len(w.messages))
	copy(msgs, w.messages)
	return domain.ConversationState{Messages: msgs, Pending: w.pending}
}

// Reset clears the conversation. Returns false while a question is outstanding.
func (w *QueryWorkflow) Reset() bool {
	w.mu.Lock()
	if w.pending {
		w.mu.Unlock()
		return false
	}
	w.messages = nil
	w.input = ""
	w.mu.Unlock()

	w.observers.notify()
	return true
}

// Subscribe registers fn to be called after every state change.
func (w *QueryWorkflow) Subscribe(fn func()) func() {
	return w.observers.subscribe(fn)
}
