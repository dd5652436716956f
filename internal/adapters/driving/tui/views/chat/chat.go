// Package chat provides the medical question and answer view.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/components/input"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/components/status"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/keymap"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/messages"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/styles"
	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driving"
	"github.com/vimed-graphrag/vimed-cli/internal/logger"
)

const (
	welcomeText = "Ask a question about diseases, symptoms, treatments or drugs.\n" +
		"Answers are retrieved from the uploaded medical documents."
	pendingText = "Searching the knowledge graph..."
)

// View is the chat view: conversation log, question input and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PromptInput
	log       viewport.Model
	spinner   spinner.Model
	statusbar *status.Bar

	query driving.QueryWorkflow
	ctx   context.Context

	width  int
	height int
}

// NewView creates a chat view over the query workflow.
func NewView(s *styles.Styles, km *keymap.KeyMap, query driving.QueryWorkflow) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewPromptInput(s, "Ask:", "Type a medical question..."),
		log:       viewport.New(80, 16),
		spinner:   sp,
		statusbar: status.NewBar(s, km),
		query:     query,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	v.statusbar.SetHints(km.ChatHelp())
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
	v.input.SetValue(v.query.Input())
	v.Refresh()
	cmds := []tea.Cmd{v.input.Focus(), v.input.Init()}
	if v.query.State().Pending {
		cmds = append(cmds, v.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		if !v.query.State().Pending {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		v.Refresh()
		return v, cmd

	case messages.WorkflowChanged:
		v.Refresh()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	v.log, cmd = v.log.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Submit):
		return v, v.submit()

	case keymap.Matches(key, v.keymap.ResetChat):
		if v.query.Reset() {
			v.input.Reset()
			v.statusbar.Clear()
		}
		v.Refresh()
		return v, nil

	case key == "up", key == "down", key == "pgup", key == "pgdown":
		// j and k belong to the question text here
		var cmd tea.Cmd
		v.log, cmd = v.log.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.query.SetInput(v.input.Value())
	return v, cmd
}

// submit begins a question and returns the command that performs it.
func (v *View) submit() tea.Cmd {
	req, err := v.query.Begin(v.input.Value())
	if err != nil {
		if !errors.Is(err, domain.ErrQueryInFlight) && !errors.Is(err, domain.ErrEmptyQuery) {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(domain.UserMessage(err))
		}
		return nil
	}

	v.input.Reset()
	v.statusbar.SetMessage("")
	v.Refresh()
	logger.Debug("question submitted", zap.String("request_id", req.ID))

	return tea.Batch(v.spinner.Tick, Execute(v.ctx, v.query, req))
}

// Execute returns a command that performs req and reports the outcome.
func Execute(ctx context.Context, query driving.QueryWorkflow, req driving.QueryRequest) tea.Cmd {
	return func() tea.Msg {
		answer, err := query.Execute(ctx, req)
		return messages.QuerySettled{Request: req, Answer: answer, Err: err}
	}
}

// Refresh re-renders the conversation from the workflow state.
func (v *View) Refresh() {
	state := v.query.State()

	if state.Pending {
		v.statusbar.SetState(status.StateThinking)
	} else if v.statusbar.State() == status.StateThinking {
		v.statusbar.SetState(status.StateReady)
	}

	atBottom := v.log.AtBottom()
	v.log.SetContent(v.renderMessages(state))
	if atBottom || state.Pending {
		v.log.GotoBottom()
	}
}

func (v *View) renderMessages(state domain.ConversationState) string {
	if len(state.Messages) == 0 && !state.Pending {
		return v.styles.Muted.Render(welcomeText)
	}

	width := v.width - 4
	if width < 20 {
		width = 20
	}

	blocks := make([]string, 0, len(state.Messages)+1)
	for _, m := range state.Messages {
		blocks = append(blocks, v.renderMessage(m, width))
	}
	if state.Pending {
		blocks = append(blocks, v.spinner.View()+" "+v.styles.Muted.Render(pendingText))
	}
	return strings.Join(blocks, "\n\n")
}

func (v *View) renderMessage(m domain.ConversationMessage, width int) string {
	author := "ViMed"
	style := v.styles.AssistantMessage
	if m.Role == domain.RoleUser {
		author = "You"
		style = v.styles.UserMessage
	}

	header := v.styles.Muted.Render(author + " · " + m.Timestamp)
	body := style.Width(width).Render(m.Content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// View renders the chat view.
func (v *View) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		v.log.View(),
		"",
		v.input.View(),
		v.statusbar.View(),
	)
}

// SetDimensions sets the available area.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)

	logHeight := height - 5
	if logHeight < 3 {
		logHeight = 3
	}
	v.log.Width = width
	v.log.Height = logHeight
	v.Refresh()
}

// Input returns the current question text.
func (v *View) Input() string {
	return v.input.Value()
}
