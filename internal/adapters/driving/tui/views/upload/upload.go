// Package upload provides the document upload view.
package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/components/input"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/components/list"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/components/status"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/components/toast"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/keymap"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/messages"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/styles"
	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driving"
	"github.com/vimed-graphrag/vimed-cli/internal/logger"
)

// Mode is the input mode of the upload view.
type Mode int

const (
	// ModeList navigates the staged files.
	ModeList Mode = iota
	// ModePath types or pastes a path.
	ModePath
	// ModeBrowse picks a file with the file picker.
	ModeBrowse
)

// View is the upload view: staged files, submit button and notifications.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	files     *list.FileList
	path      *input.PromptInput
	picker    filepicker.Model
	toast     *toast.Toast
	statusbar *status.Bar

	upload   driving.UploadWorkflow
	notifier driving.Notifier
	ctx      context.Context

	mode   Mode
	width  int
	height int
}

// NewView creates an upload view over the upload workflow and notifier.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	upload driving.UploadWorkflow,
	notifier driving.Notifier,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	fp := filepicker.New()
	fp.AutoHeight = true
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	path := input.NewPromptInput(s, "Path:", "Paste or type a PDF path...")
	path.Blur()

	v := &View{
		styles:    s,
		keymap:    km,
		files:     list.NewFileList(s),
		path:      path,
		picker:    fp,
		toast:     toast.New(s),
		statusbar: status.NewBar(s, km),
		upload:    upload,
		notifier:  notifier,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	v.statusbar.SetHints(km.UploadHelp())
	v.Refresh()
	return v
}

// WithContext sets the context used for backend calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init is called when the view is mounted.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Mode returns the current input mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		var cmd tea.Cmd
		v.picker, cmd = v.picker.Update(msg)
		return v, cmd

	case messages.WorkflowChanged:
		v.Refresh()
		return v, nil

	case messages.FilesDropped:
		v.Stage(msg.Paths)
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case ModePath:
			return v.handlePathKey(msg)
		case ModeBrowse:
			return v.handleBrowseKey(msg)
		case ModeList:
			return v.handleListKey(msg)
		}
	}

	if v.mode == ModeBrowse {
		var cmd tea.Cmd
		v.picker, cmd = v.picker.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Paste {
		return v, dropped(string(msg.Runes))
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Upload):
		return v, v.submit()

	case keymap.Matches(key, v.keymap.Remove):
		v.upload.RemoveFile(v.files.Selected())
		v.Refresh()
		return v, nil

	case keymap.Matches(key, v.keymap.AddPath):
		v.mode = ModePath
		v.path.Reset()
		return v, v.path.Focus()

	case keymap.Matches(key, v.keymap.Browse):
		v.mode = ModeBrowse
		return v, v.picker.Init()

	case keymap.Matches(key, v.keymap.Dismiss):
		v.notifier.Dismiss()
		return v, nil
	}

	var cmd tea.Cmd
	v.files, cmd = v.files.Update(msg)
	return v, cmd
}

func (v *View) handlePathKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		v.leavePath()
		return v, nil

	case keymap.Matches(key, v.keymap.Submit):
		text := v.path.Value()
		v.leavePath()
		return v, dropped(text)
	}

	var cmd tea.Cmd
	v.path, cmd = v.path.Update(msg)
	return v, cmd
}

func (v *View) leavePath() {
	v.mode = ModeList
	v.path.Reset()
	v.path.Blur()
}

func (v *View) handleBrowseKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if keymap.Matches(msg.String(), v.keymap.Back) {
		v.mode = ModeList
		return v, nil
	}

	var cmd tea.Cmd
	v.picker, cmd = v.picker.Update(msg)
	// Picked files take the same route as dropped ones so AddFiles is the
	// only validator.
	if ok, path := v.picker.DidSelectFile(msg); ok {
		logger.Debug("picker selected file", zap.String("path", path))
		v.mode = ModeList
		return v, tea.Batch(cmd, func() tea.Msg { return messages.FilesDropped{Paths: []string{path}} })
	}
	return v, cmd
}

// dropped returns a command reporting the paths found in text.
func dropped(text string) tea.Cmd {
	paths := ParsePaths(text)
	if len(paths) == 0 {
		return nil
	}
	return func() tea.Msg {
		return messages.FilesDropped{Paths: paths}
	}
}

// Stage resolves paths to files and adds them to the batch.
// Unreadable paths are reported as one error notification.
func (v *View) Stage(paths []string) {
	candidates := make([]domain.StagedFile, 0, len(paths))
	var unreadable []string
	for _, p := range paths {
		f, err := domain.StagedFileFromPath(p)
		if err != nil {
			logger.Debug("cannot stage path", zap.String("path", p), zap.Error(err))
			unreadable = append(unreadable, p)
			continue
		}
		candidates = append(candidates, f)
	}

	var addErr error
	if len(candidates) > 0 {
		var added int
		added, addErr = v.upload.AddFiles(candidates)
		logger.Debug("files staged", zap.Int("added", added), zap.Error(addErr))
	}
	if len(unreadable) > 0 && addErr == nil {
		v.notifier.Notify(domain.NotificationError, "Cannot read "+strings.Join(unreadable, ", "))
	}
	v.Refresh()
}

// submit begins an upload and returns the command that performs it.
func (v *View) submit() tea.Cmd {
	req, err := v.upload.Begin()
	if err != nil {
		if !errors.Is(err, domain.ErrUploadInFlight) && !errors.Is(err, domain.ErrEmptyBatch) {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(domain.UserMessage(err))
		}
		return nil
	}
	v.Refresh()
	logger.Debug("upload submitted", zap.String("request_id", req.ID), zap.Int("files", len(req.Files)))
	return Execute(v.ctx, v.upload, req)
}

// Execute returns a command that performs req and reports the outcome.
func Execute(ctx context.Context, upload driving.UploadWorkflow, req driving.UploadRequest) tea.Cmd {
	return func() tea.Msg {
		receipt, err := upload.Execute(ctx, req)
		return messages.UploadSettled{Request: req, Receipt: receipt, Err: err}
	}
}

// Refresh re-reads the batch and the active notification.
func (v *View) Refresh() {
	batch := v.upload.Batch()
	v.files.SetFiles(batch.Files)

	switch {
	case batch.Uploading:
		v.statusbar.SetState(status.StateUploading)
	case v.statusbar.State() == status.StateUploading:
		v.statusbar.SetState(status.StateReady)
	}
	if !batch.Uploading && batch.Len() > 0 {
		v.statusbar.SetMessage(fmt.Sprintf("%d staged", batch.Len()))
	} else if v.statusbar.State() != status.StateError {
		v.statusbar.SetMessage("")
	}

	if n, ok := v.notifier.Current(); ok {
		v.toast.Show(n)
	} else {
		v.toast.Hide()
	}
}

// View renders the upload view.
func (v *View) View() string {
	var body string
	switch v.mode {
	case ModeBrowse:
		body = lipgloss.JoinVertical(lipgloss.Left,
			v.styles.Subtitle.Render("Pick a PDF (esc to cancel)"),
			v.picker.View(),
		)
	case ModePath:
		body = lipgloss.JoinVertical(lipgloss.Left,
			v.files.View(),
			"",
			v.path.View(),
		)
	case ModeList:
		body = lipgloss.JoinVertical(lipgloss.Left,
			v.files.View(),
			"",
			v.renderButton(),
		)
	}

	parts := []string{body}
	if t := v.toast.View(); t != "" {
		parts = append(parts, "", t)
	}
	parts = append(parts, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *View) renderButton() string {
	batch := v.upload.Batch()
	switch {
	case batch.Uploading:
		return v.styles.Muted.Render("Uploading...")
	case batch.Len() == 0:
		return ""
	default:
		return v.styles.Button.Render(domain.UploadButtonLabel(batch.Len())) +
			v.styles.Muted.Render("  press u")
	}
}

// SetDimensions sets the available area.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.files.SetSize(width, height-8)
	v.path.SetWidth(width)
	v.statusbar.SetWidth(width)
}
