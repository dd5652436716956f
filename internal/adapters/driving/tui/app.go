package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/keymap"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/messages"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/styles"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/views/chat"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/views/graph"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui/views/upload"
	"github.com/vimed-graphrag/vimed-cli/internal/logger"
)

// headerHeight is the number of lines above the mounted view.
const headerHeight = 3

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to the workflows via driving ports.
	ports *Ports

	// ctx is passed to backend calls.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	chatView   *chat.View
	uploadView *upload.View
	graphView  *graph.View

	// active is the mounted tab. Only it receives keys and renders.
	active messages.Tab

	// bridge delivers workflow changes made off the Update loop.
	bridge *bridge

	// initialFiles are staged when the program starts.
	initialFiles []string

	// server is the backend address shown in the header.
	server string

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingQueryWorkflow)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		chatView:   chat.NewView(s, km, ports.Query),
		uploadView: upload.NewView(s, km, ports.Upload, ports.Notifier),
		graphView:  graph.NewView(s, km, ports.Visualization),
		active:     messages.TabChat,
		bridge:     newBridge(ports.Query, ports.Upload, ports.Visualization, ports.Notifier),
	}

	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			a.server = settings.Backend.BaseURL
		}
	}

	return a, nil
}

// WithContext sets the context for backend calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	a.uploadView.WithContext(ctx)
	a.graphView.WithContext(ctx)
	return a
}

// WithFiles stages paths when the program starts.
func (a *App) WithFiles(paths []string) *App {
	a.initialFiles = paths
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("ViMed - Medical Assistant"),
		a.bridge.listen(),
		a.mountCmd(),
	}
	if len(a.initialFiles) > 0 {
		paths := a.initialFiles
		cmds = append(cmds, func() tea.Msg { return messages.FilesDropped{Paths: paths} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		// the file picker sizes itself from the window
		a.uploadView, cmd = a.uploadView.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - headerHeight})
		return a, cmd

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(key, a.keymap.NextTab):
			return a, a.switchTo(a.active.Next())
		case keymap.Matches(key, a.keymap.PrevTab):
			return a, a.switchTo(a.active.Prev())
		}
		return a, a.updateActive(msg)

	case messages.TabChanged:
		return a, a.switchTo(msg.Tab)

	case messages.WorkflowChanged:
		a.chatView.Refresh()
		a.uploadView.Refresh()
		a.graphView.Refresh()
		return a, a.bridge.listen()

	case messages.QuerySettled:
		a.ports.Query.Settle(msg.Request, msg.Answer, msg.Err)
		a.chatView.Refresh()
		return a, nil

	case messages.UploadSettled:
		a.ports.Upload.Settle(msg.Request, msg.Receipt, msg.Err)
		a.uploadView.Refresh()
		return a, nil

	case messages.VisualizationSettled:
		a.ports.Visualization.Complete(msg.Request, msg.Artifact, msg.Err)
		a.graphView, cmd = a.graphView.Update(msg)
		return a, cmd

	case messages.FilesDropped:
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		logger.Error("tui error", zap.Error(msg.Err))
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateActive(msg)
}

// switchTo mounts tab and returns its init command.
func (a *App) switchTo(tab messages.Tab) tea.Cmd {
	if tab == a.active {
		return nil
	}
	logger.Debug("tab changed", zap.String("from", a.active.String()), zap.String("to", tab.String()))
	a.active = tab
	return a.mountCmd()
}

func (a *App) mountCmd() tea.Cmd {
	switch a.active {
	case messages.TabUpload:
		return a.uploadView.Init()
	case messages.TabGraph:
		return a.graphView.Init()
	case messages.TabChat:
		return a.chatView.Init()
	}
	return nil
}

func (a *App) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.active {
	case messages.TabChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.TabUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.TabGraph:
		a.graphView, cmd = a.graphView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.active {
	case messages.TabChat:
		body = a.chatView.View()
	case messages.TabUpload:
		body = a.uploadView.View()
	case messages.TabGraph:
		body = a.graphView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), "", body)
}

func (a *App) renderHeader() string {
	tabs := make([]string, 0, len(messages.Tabs))
	for _, t := range messages.Tabs {
		if t == a.active {
			tabs = append(tabs, a.styles.ActiveTab.Render(t.Title()))
		} else {
			tabs = append(tabs, a.styles.Tab.Render(t.Title()))
		}
	}

	title := a.styles.Title.Render("ViMed")
	if a.server != "" {
		title += " " + a.styles.Muted.Render(a.server)
	}
	return title + "\n" + strings.Join(tabs, " ")
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	defer a.bridge.close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Close releases the workflow subscriptions.
func (a *App) Close() {
	a.bridge.close()
}

// ActiveTab returns the mounted tab.
func (a *App) ActiveTab() messages.Tab {
	return a.active
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	body := height - headerHeight
	a.chatView.SetDimensions(width, body)
	a.uploadView.SetDimensions(width, body)
	a.graphView.SetDimensions(width, body)
}
