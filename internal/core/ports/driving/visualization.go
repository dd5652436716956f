package driving

import (
	"context"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

// VisualizationRequest is a fetch of the graph artifact for one attempt.
type VisualizationRequest struct {
	Attempt int
	URL     string
}

// VisualizationWorkflow manages the graph artifact lifecycle.
type VisualizationWorkflow interface {
	// Refresh increments the attempt and returns to Loading. Valid in any state.
	Refresh()

	// Begin returns the fetch for the current attempt.
	Begin() VisualizationRequest

	// Execute loads the artifact for req.
	Execute(ctx context.Context, req VisualizationRequest) (*domain.Artifact, error)

	// Complete records the outcome of req.
	Complete(req VisualizationRequest, artifact *domain.Artifact, err error)

	// MarkLoaded signals that the artifact for attempt finished loading.
	MarkLoaded(attempt int)

	// MarkFailed signals that the artifact for attempt could not be loaded.
	MarkFailed(attempt int)

	// State returns the current state.
	State() domain.VisualizationState

	// Artifact returns the last loaded artifact of the current attempt, if any.
	Artifact() (*domain.Artifact, bool)

	// Open shows the loaded artifact in the system browser.
	// Returns domain.ErrNoArtifact if nothing is loaded.
	Open() error

	// Endpoint returns the graph document URL.
	Endpoint() string

	// Subscribe registers fn to be called after every state change.
	Subscribe(fn func()) (unsubscribe func())
}
