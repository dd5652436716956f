package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/tui"
	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [files...]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Any PDF paths given are staged on the Upload Documents tab.

Controls:
  tab, shift+tab - Switch between Q&A, Upload and Graph
  enter          - Send question
  ctrl+l         - Clear the conversation
  a / b          - Add a path / browse for a PDF
  x / u          - Remove file / upload staged files
  o / r          - Open graph in browser / refresh graph
  ctrl+c         - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runApp runs the program. Replaced in tests.
var runApp = func(app *tui.App) error {
	return app.Run()
}

func runTUI(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	s, err := requireServices()
	if err != nil {
		return err
	}

	// the TUI owns the terminal; logs go to a file only
	logger.SetOutput(io.Discard)
	if s.LogFile != "" {
		if err := logger.SetFile(s.LogFile); err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = logger.Close() }()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if s.Watcher != nil {
		err := s.Watcher.Start(ctx, func(f domain.StagedFile) {
			if _, err := s.Upload.AddFiles([]domain.StagedFile{f}); err != nil {
				logger.Warn("watched file rejected", zap.String("file", f.Name), zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("watch folder disabled", zap.String("dir", s.Watcher.Dir()), zap.Error(err))
		} else {
			defer func() { _ = s.Watcher.Close() }()
		}
	}

	ports := &tui.Ports{
		Query:         s.Query,
		Upload:        s.Upload,
		Visualization: s.Visualization,
		Notifier:      s.Notifier,
		Settings:      s.Settings,
	}
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	defer app.Close()
	app.WithContext(ctx).WithFiles(absPaths(args))

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func absPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		out = append(out, p)
	}
	return out
}
