// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/styles"
	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

// FileList displays staged files with their sizes.
type FileList struct {
	files    []domain.StagedFile
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewFileList creates a new file list component.
func NewFileList(s *styles.Styles) *FileList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &FileList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the file list.
func (l *FileList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *FileList) Update(msg tea.Msg) (*FileList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the file list.
func (l *FileList) View() string {
	if len(l.files) == 0 {
		return l.styles.Muted.Render("No files staged. Paste paths, press a to type one or b to browse.")
	}

	lines := make([]string, 0, len(l.files)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Selected files (%d)", len(l.files))), "")

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.files) {
		end = len(l.files)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderFile(i, l.files[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *FileList) renderFile(index int, f domain.StagedFile) string {
	size := domain.FormatSize(f.SizeBytes)

	maxName := l.width - len(size) - 6
	if maxName < 10 {
		maxName = 10
	}
	name := f.Name
	if len(name) > maxName {
		name = name[:maxName-3] + "..."
	}

	if index == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("> %-*s  %s", maxName, name, size))
	}
	return l.styles.Normal.Render(fmt.Sprintf("  %-*s  ", maxName, name)) + l.styles.Muted.Render(size)
}

// SetFiles replaces the listed files, keeping the selection in range.
func (l *FileList) SetFiles(files []domain.StagedFile) {
	l.files = files
	if l.selected >= len(files) {
		l.selected = len(files) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Files returns the listed files.
func (l *FileList) Files() []domain.StagedFile {
	return l.files
}

// Selected returns the index of the selected file.
func (l *FileList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *FileList) SetSelected(index int) {
	if index >= 0 && index < len(l.files) {
		l.selected = index
	}
}

// MoveUp moves selection up.
func (l *FileList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *FileList) MoveDown() {
	if l.selected < len(l.files)-1 {
		l.selected++
	}
}

// SetSize sets the list dimensions.
func (l *FileList) SetSize(width, height int) {
	l.width = width
	l.height = height
}
