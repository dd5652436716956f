package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driven"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driving"
	"github.com/vimed-graphrag/vimed-cli/internal/logger"
)

// Ensure VisualizationWorkflow implements the interface.
var _ driving.VisualizationWorkflow = (*VisualizationWorkflow)(nil)

var (
	errNoLoader = errors.New("no artifact loader configured")
	errNoOpener = errors.New("no browser opener configured")
)

// VisualizationWorkflow tracks the graph artifact through Loading, Loaded and
// Failed. Each refresh starts a new attempt; signals for any other attempt
// are ignored.
type VisualizationWorkflow struct {
	backend driven.Backend
	loader  driven.ArtifactLoader
	opener  driven.Opener

	mu        sync.Mutex
	state     domain.VisualizationState
	artifact  *domain.Artifact
	observers observers
}

// NewVisualizationWorkflow creates a workflow in Loading at attempt 0.
func NewVisualizationWorkflow(backend driven.Backend, loader driven.ArtifactLoader) *VisualizationWorkflow {
	return &VisualizationWorkflow{
		backend: backend,
		loader:  loader,
	}
}

// WithOpener sets the opener used by Open.
func (w *VisualizationWorkflow) WithOpener(opener driven.Opener) *VisualizationWorkflow {
	w.opener = opener
	return w
}

// Refresh starts a new attempt.
func (w *VisualizationWorkflow) Refresh() {
	w.mu.Lock()
	w.state = domain.VisualizationState{Attempt: w.state.Attempt + 1}
	w.artifact = nil
	attempt := w.state.Attempt
	w.mu.Unlock()

	logger.Debug("visualization refreshed", zap.Int("attempt", attempt))
	w.observers.notify()
}

// Begin returns the fetch for the current attempt.
func (w *VisualizationWorkflow) Begin() driving.VisualizationRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return driving.VisualizationRequest{
		Attempt: w.state.Attempt,
		URL:     w.backend.VisualizationEndpoint(),
	}
}

// Execute loads the artifact for req.
func (w *VisualizationWorkflow) Execute(ctx context.Context, req driving.VisualizationRequest) (*domain.Artifact, error) {
	if w.loader == nil {
		return nil, errNoLoader
	}
	return w.loader.Load(ctx, req.URL, req.Attempt)
}

// Complete records the outcome of req.
func (w *VisualizationWorkflow) Complete(req driving.VisualizationRequest, artifact *domain.Artifact, err error) {
	if err != nil {
		logger.Warn("visualization failed", zap.Int("attempt", req.Attempt), zap.Error(err))
		w.MarkFailed(req.Attempt)
		return
	}

	w.mu.Lock()
	if req.Attempt == w.state.Attempt {
		w.artifact = artifact
	}
	w.mu.Unlock()
	w.MarkLoaded(req.Attempt)
}

// MarkLoaded signals that the artifact for attempt finished loading.
func (w *VisualizationWorkflow) MarkLoaded(attempt int) {
	w.mark(attempt, false)
}

// MarkFailed signals that the artifact for attempt could not be loaded.
func (w *VisualizationWorkflow) MarkFailed(attempt int) {
	w.mark(attempt, true)
}

func (w *VisualizationWorkflow) mark(attempt int, failed bool) {
	w.mu.Lock()
	if attempt != w.state.Attempt {
		w.mu.Unlock()
		logger.Debug("stale visualization signal ignored", zap.Int("attempt", attempt))
		return
	}
	w.state.Loaded = true
	w.state.Failed = failed
	if failed {
		w.artifact = nil
	}
	w.mu.Unlock()

	w.observers.notify()
}

// State returns the current state.
func (w *VisualizationWorkflow) State() domain.VisualizationState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Artifact returns the artifact of the current attempt, if loaded.
func (w *VisualizationWorkflow) Artifact() (*domain.Artifact, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.artifact == nil {
		return nil, false
	}
	a := *w.artifact
	return &a, true
}

// Open shows the loaded artifact in the system browser, preferring the
// cached copy over the remote URL.
func (w *VisualizationWorkflow) Open() error {
	artifact, ok := w.Artifact()
	if !ok {
		return domain.ErrNoArtifact
	}
	if w.opener == nil {
		return errNoOpener
	}
	target := artifact.Path
	if target == "" {
		target = artifact.URL
	}
	if err := w.opener.Open(target); err != nil {
		return fmt.Errorf("open graph: %w", err)
	}
	return nil
}

// Endpoint returns the graph document URL.
func (w *VisualizationWorkflow) Endpoint() string {
	return w.backend.VisualizationEndpoint()
}

// Subscribe registers fn to be called after every state change.
func (w *VisualizationWorkflow) Subscribe(fn func()) func() {
	return w.observers.subscribe(fn)
}
