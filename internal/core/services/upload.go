package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driven"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driving"
	"github.com/vimed-graphrag/vimed-cli/internal/logger"
)

// Ensure UploadWorkflow implements the interface.
var _ driving.UploadWorkflow = (*UploadWorkflow)(nil)

// UploadWorkflow manages the staging area and batch submission.
//
// States are Staging and Submitting. Staged file names are unique.
type UploadWorkflow struct {
	backend  driven.Backend
	notifier driving.Notifier

	mu        sync.Mutex
	files     []domain.StagedFile
	uploading bool
	observers observers
}

// NewUploadWorkflow creates an upload workflow reporting through notifier.
func NewUploadWorkflow(backend driven.Backend, notifier driving.Notifier) *UploadWorkflow {
	return &UploadWorkflow{
		backend:  backend,
		notifier: notifier,
	}
}

// AddFiles stages the PDF candidates not already staged and returns how many
// were added. Non-PDF candidates are dropped. If no candidate is a PDF an
// error notification is raised and domain.ErrNoPDFFiles returned.
func (w *UploadWorkflow) AddFiles(candidates []domain.StagedFile) (int, error) {
	pdfs := make([]domain.StagedFile, 0, len(candidates))
	for _, f := range candidates {
		if domain.IsPDF(f.Name) {
			pdfs = append(pdfs, f)
		}
	}
	if len(pdfs) == 0 {
		w.notifier.Notify(domain.NotificationError, domain.PDFOnlyNotice)
		return 0, domain.ErrNoPDFFiles
	}

	w.mu.Lock()
	seen := make(map[string]struct{}, len(w.files)+len(pdfs))
	for _, f := range w.files {
		seen[f.Name] = struct{}{}
	}
	added := 0
	for _, f := range pdfs {
		if _, dup := seen[f.Name]; dup {
			continue
		}
		seen[f.Name] = struct{}{}
		w.files = append(w.files, f)
		added++
	}
	w.mu.Unlock()

	logger.Debug("files staged", zap.Int("offered", len(candidates)), zap.Int("added", added))
	if added > 0 {
		w.observers.notify()
	}
	return added, nil
}

// RemoveFile drops the staged file at index. Out of range returns false.
func (w *UploadWorkflow) RemoveFile(index int) bool {
	w.mu.Lock()
	if index < 0 || index >= len(w.files) {
		w.mu.Unlock()
		return false
	}
	w.files = append(w.files[:index:index], w.files[index+1:]...)
	w.mu.Unlock()

	w.observers.notify()
	return true
}

// Begin enters Submitting with a snapshot of the batch.
func (w *UploadWorkflow) Begin() (driving.UploadRequest, error) {
	w.mu.Lock()
	if len(w.files) == 0 {
		w.mu.Unlock()
		return driving.UploadRequest{}, domain.ErrEmptyBatch
	}
	if w.uploading {
		w.mu.Unlock()
		return driving.UploadRequest{}, domain.ErrUploadInFlight
	}
	w.uploading = true
	files := make([]domain.StagedFile, len(w.files))
	copy(files, w.files)
	w.mu.Unlock()

	req := driving.UploadRequest{ID: uuid.NewString(), Files: files}
	logger.Debug("upload begun", zap.String("request_id", req.ID), zap.Int("files", len(files)))
	w.observers.notify()
	return req, nil
}

// Execute performs the backend call for req.
func (w *UploadWorkflow) Execute(ctx context.Context, req driving.UploadRequest) (*domain.UploadReceipt, error) {
	return w.backend.SubmitUpload(ctx, req.Files)
}

// Settle applies the outcome and returns to Staging.
//
// On success the batch is cleared, including files staged while the
// upload was in flight. On failure the batch is unchanged.
func (w *UploadWorkflow) Settle(req driving.UploadRequest, receipt *domain.UploadReceipt, err error) {
	w.mu.Lock()
	w.uploading = false
	if err == nil {
		w.files = nil
	}
	w.mu.Unlock()

	if err != nil {
		logger.Warn("upload failed", zap.String("request_id", req.ID), zap.Error(err))
		w.notifier.Notify(domain.NotificationError, domain.UserMessage(err))
	} else {
		msg := domain.UploadSuccessNotice
		if receipt != nil && receipt.Message != "" {
			msg = receipt.Message
		}
		logger.Info("upload succeeded", zap.String("request_id", req.ID), zap.Int("files", len(req.Files)))
		w.notifier.Notify(domain.NotificationSuccess, msg)
	}

	w.observers.notify()
}

// Submit runs Begin, Execute and Settle in sequence. Validation and busy
// errors are returned without a backend call; backend errors are notified
// and returned.
func (w *UploadWorkflow) Submit(ctx context.Context) error {
	req, err := w.Begin()
	if err != nil {
		return err
	}
	receipt, err := w.Execute(ctx, req)
	w.Settle(req, receipt, err)
	return err
}

// Batch returns a snapshot of the staging area.
func (w *UploadWorkflow) Batch() domain.UploadBatch {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]domain.StagedFile, len(w.files))
	copy(files, w.files)
	return domain.UploadBatch{Files: files, Uploading: w.uploading}
}

// Subscribe registers fn to be called after every state change.
func (w *UploadWorkflow) Subscribe(fn func()) func() {
	return w.observers.subscribe(fn)
}

// IsBusy reports whether err means the action was ignored because the
// workflow is busy.
func IsBusy(err error) bool {
	return errors.Is(err, domain.ErrQueryInFlight) || errors.Is(err, domain.ErrUploadInFlight)
}
