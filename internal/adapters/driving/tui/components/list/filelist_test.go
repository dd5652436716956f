package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

func files(names ...string) []domain.StagedFile {
	out := make([]domain.StagedFile, 0, len(names))
	for i, n := range names {
		out = append(out, domain.StagedFile{Name: n, SizeBytes: int64(i+1) * 2048})
	}
	return out
}

func TestNewFileList(t *testing.T) {
	l := NewFileList(nil)

	require.NotNil(t, l)
	assert.Empty(t, l.Files())
	assert.Equal(t, 0, l.Selected())
	assert.Nil(t, l.Init())
}

func TestFileList_EmptyView(t *testing.T) {
	l := NewFileList(nil)
	assert.Contains(t, l.View(), "No files staged")
}

func TestFileList_View(t *testing.T) {
	l := NewFileList(nil)
	l.SetFiles(files("guideline.pdf", "trial.pdf"))

	view := l.View()
	assert.Contains(t, view, "Selected files (2)")
	assert.Contains(t, view, "guideline.pdf")
	assert.Contains(t, view, "2.0 KB")
	assert.Contains(t, view, "4.0 KB")
	assert.Contains(t, view, "> guideline.pdf")
}

func TestFileList_Navigation(t *testing.T) {
	l := NewFileList(nil)
	l.SetFiles(files("a.pdf", "b.pdf", "c.pdf"))

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, l.Selected(), "stops at the last file")

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyUp})
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, l.Selected())
}

func TestFileList_SetFilesClampsSelection(t *testing.T) {
	l := NewFileList(nil)
	l.SetFiles(files("a.pdf", "b.pdf", "c.pdf"))
	l.SetSelected(2)

	l.SetFiles(files("a.pdf"))
	assert.Equal(t, 0, l.Selected())

	l.SetFiles(nil)
	assert.Equal(t, 0, l.Selected())
}

func TestFileList_SetSelectedOutOfRange(t *testing.T) {
	l := NewFileList(nil)
	l.SetFiles(files("a.pdf", "b.pdf"))

	l.SetSelected(5)
	assert.Equal(t, 0, l.Selected())

	l.SetSelected(-1)
	assert.Equal(t, 0, l.Selected())
}

func TestFileList_TruncatesLongNames(t *testing.T) {
	l := NewFileList(nil)
	l.SetSize(30, 10)
	l.SetFiles([]domain.StagedFile{{Name: "a-very-long-clinical-practice-guideline.pdf", SizeBytes: 10}})

	assert.Contains(t, l.View(), "...")
}

func TestFileList_Scrolls(t *testing.T) {
	l := NewFileList(nil)
	l.SetSize(80, 4)
	l.SetFiles(files("a.pdf", "b.pdf", "c.pdf", "d.pdf"))
	l.SetSelected(3)

	view := l.View()
	assert.Contains(t, view, "d.pdf")
	assert.NotContains(t, view, "a.pdf")
}
