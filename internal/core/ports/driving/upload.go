package driving

import (
	"context"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

// UploadRequest is a batch being submitted.
type UploadRequest struct {
	// ID correlates the request in logs.
	ID string

	// Files is a snapshot of the batch at submission time.
	Files []domain.StagedFile
}

// UploadWorkflow manages the staging area and batch submission.
type UploadWorkflow interface {
	// AddFiles stages the PDF candidates not already staged.
	// Returns domain.ErrNoPDFFiles, after raising an error notification, if no
	// candidate is a PDF.
	AddFiles(candidates []domain.StagedFile) (int, error)

	// RemoveFile drops the staged file at index. Out of range is a no-op.
	RemoveFile(index int) bool

	// Begin enters Submitting. Returns domain.ErrEmptyBatch or
	// domain.ErrUploadInFlight without changing state.
	Begin() (UploadRequest, error)

	// Execute performs the backend call for req. It does not touch workflow state.
	Execute(ctx context.Context, req UploadRequest) (*domain.UploadReceipt, error)

	// Settle applies the outcome and returns to Staging.
	Settle(req UploadRequest, receipt *domain.UploadReceipt, err error)

	// Submit runs Begin, Execute and Settle in sequence.
	Submit(ctx context.Context) error

	// Batch returns a snapshot of the staging area.
	Batch() domain.UploadBatch

	// Subscribe registers fn to be called after every state change.
	Subscribe(fn func()) (unsubscribe func())
}
