package domain

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.pdf", true},
		{"REPORT.PDF", true},
		{"mixed.Pdf", true},
		{"b.txt", false},
		{"pdf", false},
		{"archive.pdf.zip", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPDF(tt.name))
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048575, "1024.0 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSize(tt.bytes))
			// Same input, same output.
			assert.Equal(t, FormatSize(tt.bytes), FormatSize(tt.bytes))
		})
	}
}

func TestUploadButtonLabel(t *testing.T) {
	assert.Equal(t, "Upload 1 file", UploadButtonLabel(1))
	assert.Equal(t, "Upload 3 files", UploadButtonLabel(3))
}

func TestStagedFileFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guideline.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7"), 0o600))

	f, err := StagedFileFromPath(path)

	require.NoError(t, err)
	assert.Equal(t, "guideline.pdf", f.Name)
	assert.Equal(t, int64(8), f.SizeBytes)

	rc, err := f.Handle.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))
}

func TestStagedFileFromPath_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := StagedFileFromPath(filepath.Join(t.TempDir(), "missing.pdf"))
		assert.Error(t, err)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := StagedFileFromPath(t.TempDir())
		assert.ErrorIs(t, err, ErrIsDirectory)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUploadBatch_Names(t *testing.T) {
	b := UploadBatch{Files: []StagedFile{{Name: "a.pdf"}, {Name: "b.pdf"}}}

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, b.Names())
}
