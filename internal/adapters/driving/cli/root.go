// Package cli provides the vimed command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driving"
	"github.com/vimed-graphrag/vimed-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Options are the global flags that shape how services are built.
type Options struct {
	// Server overrides backend.base_url.
	Server string

	// ConfigDir overrides ~/.vimed.
	ConfigDir string

	// Ephemeral keeps configuration in memory only.
	Ephemeral bool

	// Verbose enables debug logging.
	Verbose bool
}

// FolderWatcher stages PDFs dropped into a directory.
type FolderWatcher interface {
	Dir() string
	Start(ctx context.Context, handle func(domain.StagedFile)) error
	Close() error
}

// Services holds the driving ports used by the commands.
type Services struct {
	Query         driving.QueryWorkflow
	Upload        driving.UploadWorkflow
	Visualization driving.VisualizationWorkflow
	Notifier      driving.Notifier
	Settings      driving.SettingsService

	// Watcher is nil unless upload.watch_dir is configured.
	Watcher FolderWatcher

	// LogFile is where the TUI writes logs.
	LogFile string
}

// Factory builds the services once flags are parsed.
type Factory func(opts Options) (*Services, error)

var (
	opts     Options
	factory  Factory
	services *Services
)

var rootCmd = &cobra.Command{
	Use:   "vimed",
	Short: "ViMed medical assistant client",
	Long: `vimed is a terminal client for the ViMed GraphRAG medical assistant.

Ask medical questions answered from your documents, upload PDF guidelines
into the knowledge graph and fetch the graph visualization.

Run without arguments in a terminal to start the interactive UI.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runRoot,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.Server, "server", "", "backend URL (overrides backend.base_url)")
	flags.StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (default ~/.vimed)")
	flags.BoolVar(&opts.Ephemeral, "ephemeral", false, "do not read or write the config file")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
}

// SetFactory sets the function that builds services after flag parsing.
func SetFactory(f Factory) {
	factory = f
}

// SetServices sets prebuilt services, bypassing the factory.
func SetServices(s *Services) {
	services = s
}

// Execute runs the root command. Errors a command has not already shown
// to the user are printed to stderr.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	var shown *reportedError
	if err != nil && !errors.As(err, &shown) {
		rootCmd.PrintErrln("Error:", err)
	}
	return err
}

// reportedError marks an error whose user-facing message was already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)

	if services != nil || factory == nil {
		return nil
	}
	s, err := factory(opts)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	services = s
	logger.Debug("services ready", zap.String("command", cmd.Name()))
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if isTerminal() {
		return runTUI(cmd, args)
	}
	return cmd.Help()
}

// isTerminal reports whether stdin and stdout are interactive.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var errNotConfigured = errors.New("services not configured")

func requireServices() (*Services, error) {
	if services == nil {
		return nil, errNotConfigured
	}
	return services, nil
}
