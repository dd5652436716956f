package driven

import (
	"context"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

// Backend is the remote retrieval service.
// Each call performs at most one outbound request and never retries.
// Failures are *domain.RequestError for non-success responses and
// *domain.TransportFault for network or decoding problems.
type Backend interface {
	// SubmitQuery asks a question and returns up to topK answer passages.
	SubmitQuery(ctx context.Context, text string, topK int) (*domain.QueryAnswer, error)

	// SubmitUpload sends the files for ingestion. The slice is not modified.
	SubmitUpload(ctx context.Context, files []domain.StagedFile) (*domain.UploadReceipt, error)

	// VisualizationEndpoint returns the graph document URL without contacting the backend.
	VisualizationEndpoint() string
}
