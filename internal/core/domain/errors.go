package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of all locally rejected input.
// Validation failures never reach the backend.
var ErrValidation = errors.New("invalid input")

// Validation errors.
var (
	// ErrEmptyQuery indicates a blank or whitespace-only question.
	ErrEmptyQuery = fmt.Errorf("%w: empty query", ErrValidation)

	// ErrNoPDFFiles indicates none of the offered files is a PDF.
	ErrNoPDFFiles = fmt.Errorf("%w: %s", ErrValidation, PDFOnlyNotice)

	// ErrEmptyBatch indicates an upload was requested with nothing staged.
	ErrEmptyBatch = fmt.Errorf("%w: no files staged", ErrValidation)

	// ErrIsDirectory indicates a directory was offered as a file.
	ErrIsDirectory = fmt.Errorf("%w: is a directory", ErrValidation)
)

// Busy errors. The offending action is a no-op.
var (
	// ErrQueryInFlight indicates a question is already awaiting its answer.
	ErrQueryInFlight = errors.New("query already in flight")

	// ErrUploadInFlight indicates a batch is already being submitted.
	ErrUploadInFlight = errors.New("upload already in flight")
)

// ErrNoArtifact indicates the graph artifact has not been loaded.
var ErrNoArtifact = errors.New("no graph available")

// RequestError is a non-success HTTP response from the backend.
type RequestError struct {
	// Status is the HTTP status code.
	Status int

	// Detail is the backend's error detail, or a generic message.
	Detail string
}

// Error implements error.
func (e *RequestError) Error() string {
	return e.Detail
}

// TransportFault is a network failure or malformed response.
type TransportFault struct {
	// Op names the failed operation, e.g. "search".
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *TransportFault) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportFault) Unwrap() error {
	return e.Err
}

// UserMessage renders err the way it is shown to the user.
// Request errors show the backend detail, transport faults a generic line.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Detail
	}

	var fault *TransportFault
	if errors.As(err, &fault) {
		return fmt.Sprintf("%s failed: backend unreachable", capitalise(fault.Op))
	}

	return err.Error()
}

func capitalise(s string) string {
	if s == "" {
		return "Request"
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
