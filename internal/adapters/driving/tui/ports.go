// Package tui provides the interactive terminal interface for vimed.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Query runs the medical question and answer conversation.
	Query driving.QueryWorkflow

	// Upload stages and submits PDF documents.
	Upload driving.UploadWorkflow

	// Visualization loads the knowledge graph artifact.
	Visualization driving.VisualizationWorkflow

	// Notifier holds the active toast.
	Notifier driving.Notifier

	// Settings is optional; when set the header shows the backend address.
	Settings driving.SettingsService
}

// NewPorts creates a Ports aggregate with the required workflows.
func NewPorts(
	query driving.QueryWorkflow,
	upload driving.UploadWorkflow,
	visualization driving.VisualizationWorkflow,
	notifier driving.Notifier,
) *Ports {
	return &Ports{
		Query:         query,
		Upload:        upload,
		Visualization: visualization,
		Notifier:      notifier,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryWorkflow
	}
	if p.Upload == nil {
		return ErrMissingUploadWorkflow
	}
	if p.Visualization == nil {
		return ErrMissingVisualizationWorkflow
	}
	if p.Notifier == nil {
		return ErrMissingNotifier
	}
	return nil
}
