package domain

import "time"

// VisualizationPhase is the display state of the graph artifact.
type VisualizationPhase string

const (
	// PhaseLoading means the artifact for the current attempt is being fetched.
	PhaseLoading VisualizationPhase = "loading"

	// PhaseLoaded means the artifact is available.
	PhaseLoaded VisualizationPhase = "loaded"

	// PhaseFailed means the artifact could not be loaded.
	PhaseFailed VisualizationPhase = "failed"
)

// String returns the string representation.
func (p VisualizationPhase) String() string {
	return string(p)
}

// VisualizationState tracks the lifecycle of the embedded graph artifact.
// Loaded is also true on failure; Failed alone distinguishes the two.
type VisualizationState struct {
	// Attempt changes on every refresh and keys the artifact fetch.
	Attempt int

	// Loaded is true once the current attempt has settled.
	Loaded bool

	// Failed is true if the current attempt could not be loaded.
	Failed bool
}

// Phase derives the display phase from the flags.
func (s VisualizationState) Phase() VisualizationPhase {
	switch {
	case s.Failed:
		return PhaseFailed
	case s.Loaded:
		return PhaseLoaded
	default:
		return PhaseLoading
	}
}

// Artifact is a fetched copy of the graph visualization document.
type Artifact struct {
	// URL is the location the document was fetched from.
	URL string

	// Path is the local file holding the document.
	Path string

	// SizeBytes is the document size.
	SizeBytes int64

	// Attempt is the visualization attempt that produced this copy.
	Attempt int

	// FetchedAt is when the document was downloaded.
	FetchedAt time.Time
}
