// Package graph provides the knowledge graph view.
package graph

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/components/status"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/keymap"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/messages"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/styles"
	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driving"
	"github.com/vimed-graphrag/vimed-cli/internal/logger"
)

// View shows the state of the graph visualization artifact.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	spinner   spinner.Model
	statusbar *status.Bar

	graph driving.VisualizationWorkflow
	ctx   context.Context

	inFlight bool
	fetching int

	width  int
	height int
}

// NewView creates a graph view over the visualization workflow.
func NewView(s *styles.Styles, km *keymap.KeyMap, graph driving.VisualizationWorkflow) *View {
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
		spinner:   sp,
		statusbar: status.NewBar(s, km),
		graph:     graph,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	v.statusbar.SetHints(km.GraphHelp())
	return v
}

// WithContext sets the context used for fetches.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init is called when the view is mounted. It starts a fetch if the
// current attempt is loading and none is in flight.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	if cmd := v.fetch(); cmd != nil {
		return cmd
	}
	if v.graph.State().Phase() == domain.PhaseLoading {
		return v.spinner.Tick
	}
	return nil
}

// Update handles messages for the graph view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		if v.graph.State().Phase() != domain.PhaseLoading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.VisualizationSettled:
		if msg.Request.Attempt == v.fetching {
			v.inFlight = false
		}
		v.Refresh()
		return v, nil

	case messages.WorkflowChanged:
		v.Refresh()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Refresh):
		v.graph.Refresh()
		v.Refresh()
		return v, v.fetch()

	case keymap.Matches(key, v.keymap.Open):
		if err := v.graph.Open(); err != nil {
			logger.Warn("open graph failed", zap.Error(err))
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(domain.UserMessage(err))
			return v, nil
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("Opened in browser")
	}
	return v, nil
}

// fetch returns the command loading the current attempt, or nil when
// nothing needs fetching.
func (v *View) fetch() tea.Cmd {
	state := v.graph.State()
	if state.Phase() != domain.PhaseLoading || (v.inFlight && v.fetching == state.Attempt) {
		return nil
	}
	req := v.graph.Begin()
	v.inFlight = true
	v.fetching = req.Attempt
	logger.Debug("fetching graph", zap.Int("attempt", req.Attempt))
	return tea.Batch(v.spinner.Tick, Execute(v.ctx, v.graph, req))
}

// Execute returns a command that loads req and reports the outcome.
func Execute(ctx context.Context, graph driving.VisualizationWorkflow, req driving.VisualizationRequest) tea.Cmd {
	return func() tea.Msg {
		artifact, err := graph.Execute(ctx, req)
		return messages.VisualizationSettled{Request: req, Artifact: artifact, Err: err}
	}
}

// Refresh updates the status bar from the workflow state.
func (v *View) Refresh() {
	switch v.graph.State().Phase() {
	case domain.PhaseLoading:
		v.statusbar.SetState(status.StateLoading)
		v.statusbar.SetMessage("")
	case domain.PhaseFailed:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage("")
	case domain.PhaseLoaded:
		if v.statusbar.State() != status.StateError || v.statusbar.Message() == "" {
			v.statusbar.SetState(status.StateReady)
		}
	}
}

// View renders the graph view.
func (v *View) View() string {
	state := v.graph.State()

	var body string
	switch state.Phase() {
	case domain.PhaseLoading:
		body = v.spinner.View() + " " + v.styles.Muted.Render("Loading knowledge graph...")
	case domain.PhaseFailed:
		body = lipgloss.JoinVertical(lipgloss.Left,
			v.styles.Error.Render("No graph available"),
			"",
			v.styles.Button.Render("r  Try again"),
		)
	case domain.PhaseLoaded:
		body = v.renderArtifact()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Subtitle.Render(v.graph.Endpoint()),
		"",
		body,
		"",
		v.statusbar.View(),
	)
}

func (v *View) renderArtifact() string {
	artifact, ok := v.graph.Artifact()
	if !ok {
		return v.styles.Muted.Render("Graph loaded")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Success.Render("Graph loaded"),
		v.styles.Normal.Render(fmt.Sprintf("File:    %s", artifact.Path)),
		v.styles.Normal.Render(fmt.Sprintf("Size:    %s", domain.FormatSize(artifact.SizeBytes))),
		v.styles.Normal.Render(fmt.Sprintf("Fetched: %s", artifact.FetchedAt.Format("15:04:05"))),
		"",
		v.styles.Muted.Render("Press o to open the interactive graph in your browser."),
	)
}

// SetDimensions sets the available area.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusbar.SetWidth(width)
}
