// Package domain defines the core entities of the vimed client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ConversationMessage: One entry of the question/answer log
//   - StagedFile, UploadBatch: PDFs waiting to be ingested
//   - Notification: A short-lived success or error toast
//   - VisualizationState: Load state of the knowledge-graph artifact
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
