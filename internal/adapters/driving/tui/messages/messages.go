// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driving"
)

// Tab identifies which workflow view is mounted.
type Tab int

const (
	// TabChat is the medical question and answer view.
	TabChat Tab = iota
	// TabUpload is the document upload view.
	TabUpload
	// TabGraph is the knowledge graph view.
	TabGraph
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabChat, TabUpload, TabGraph}

// String returns the string representation of the tab.
func (t Tab) String() string {
	switch t {
	case TabChat:
		return "chat"
	case TabUpload:
		return "upload"
	case TabGraph:
		return "graph"
	default:
		return "unknown"
	}
}

// Title returns the label shown in the tab bar.
func (t Tab) Title() string {
	switch t {
	case TabChat:
		return "Medical Q&A"
	case TabUpload:
		return "Upload Documents"
	case TabGraph:
		return "Knowledge Graph"
	default:
		return "Unknown"
	}
}

// Next returns the tab after t, wrapping around.
func (t Tab) Next() Tab {
	return Tabs[(int(t)+1)%len(Tabs)]
}

// Prev returns the tab before t, wrapping around.
func (t Tab) Prev() Tab {
	return Tabs[(int(t)+len(Tabs)-1)%len(Tabs)]
}

// TabChanged is sent when another tab is mounted.
type TabChanged struct {
	Tab Tab
}

// WorkflowChanged signals that a workflow or the notifier changed state
// outside the Update loop and the screen should be redrawn.
type WorkflowChanged struct{}

// QuerySettled carries the outcome of a question back to the model.
type QuerySettled struct {
	Request driving.QueryRequest
	Answer  *domain.QueryAnswer
	Err     error
}

// UploadSettled carries the outcome of a batch upload back to the model.
type UploadSettled struct {
	Request driving.UploadRequest
	Receipt *domain.UploadReceipt
	Err     error
}

// VisualizationSettled carries the outcome of an artifact fetch back to the model.
type VisualizationSettled struct {
	Request  driving.VisualizationRequest
	Artifact *domain.Artifact
	Err      error
}

// FilesDropped carries paths pasted or picked in the upload view.
type FilesDropped struct {
	Paths []string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
