package tui

import "errors"

// ErrMissingQueryWorkflow is returned when the query workflow is not provided.
var ErrMissingQueryWorkflow = errors.New("tui: query workflow is required")

// ErrMissingUploadWorkflow is returned when the upload workflow is not provided.
var ErrMissingUploadWorkflow = errors.New("tui: upload workflow is required")

// ErrMissingVisualizationWorkflow is returned when the visualization workflow is not provided.
var ErrMissingVisualizationWorkflow = errors.New("tui: visualization workflow is required")

// ErrMissingNotifier is returned when the notifier is not provided.
var ErrMissingNotifier = errors.New("tui: notifier is required")
