package domain

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Upload texts shown to the user.
const (
	// PDFOnlyNotice is emitted when a set of candidates contains no PDF.
	PDFOnlyNotice = "Only PDF files are accepted."

	// UploadSuccessNotice is used when the backend does not supply a message.
	UploadSuccessNotice = "Files uploaded successfully!"
)

const (
	kilobyte = 1024
	megabyte = 1024 * 1024
)

// FileHandle gives access to the bytes of a staged file.
type FileHandle interface {
	// Open returns a reader over the file contents. The caller closes it.
	Open() (io.ReadCloser, error)
}

// LocalFile is a FileHandle backed by a path on the local filesystem.
type LocalFile string

// Open opens the file for reading.
func (f LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

// StagedFile is a file waiting in the upload batch.
// Name is the unique key within a batch.
type StagedFile struct {
	// Name is the file name sent to the backend.
	Name string

	// SizeBytes is the file size.
	SizeBytes int64

	// Handle reads the file contents.
	Handle FileHandle
}

// StagedFileFromPath builds a StagedFile for a local path.
func StagedFileFromPath(path string) (StagedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return StagedFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return StagedFile{}, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	return StagedFile{
		Name:      filepath.Base(path),
		SizeBytes: info.Size(),
		Handle:    LocalFile(path),
	}, nil
}

// UploadBatch is a snapshot of the files staged for upload.
type UploadBatch struct {
	// Files are the staged files in display order.
	Files []StagedFile

	// Uploading is true while the batch is being submitted.
	Uploading bool
}

// Len returns the number of staged files.
func (b UploadBatch) Len() int {
	return len(b.Files)
}

// Names returns the staged file names in order.
func (b UploadBatch) Names() []string {
	names := make([]string, 0, len(b.Files))
	for _, f := range b.Files {
		names = append(names, f.Name)
	}
	return names
}

// UploadReceipt is the successful payload of an ingest request.
type UploadReceipt struct {
	Message string   `json:"message"`
	Files   []string `json:"files"`
}

// IsPDF reports whether name has a .pdf extension, ignoring case.
func IsPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}

// FormatSize renders a byte count for display.
func FormatSize(bytes int64) string {
	switch {
	case bytes < kilobyte:
		return fmt.Sprintf("%d B", bytes)
	case bytes < megabyte:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kilobyte)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/megabyte)
	}
}

// UploadButtonLabel renders the submit label for n staged files.
func UploadButtonLabel(n int) string {
	if n == 1 {
		return "Upload 1 file"
	}
	return fmt.Sprintf("Upload %d files", n)
}
