// Command vimed is the terminal client for the ViMed medical assistant.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driven/artifact"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driven/backend/httpapi"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driven/browser"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driven/config/file"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driven/config/memory"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driven/watch"
	"github.com/vimed-graphrag/vimed-cli/internal/adapters/driving/cli"
	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driven"
	"github.com/vimed-graphrag/vimed-cli/internal/core/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetFactory(build)
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// build wires the driven adapters into the workflows.
func build(opts cli.Options) (*cli.Services, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	var store driven.ConfigStore
	if opts.Ephemeral {
		store = memory.NewConfigStore()
	} else {
		fs, err := file.NewConfigStore(configDir)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		store = fs
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if opts.Server != "" {
		settings.Backend.BaseURL = strings.TrimRight(opts.Server, "/")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	client := httpapi.NewClient(httpapi.Config{
		BaseURL:           settings.Backend.BaseURL,
		Timeout:           settings.Backend.Timeout(),
		RequestsPerSecond: float64(settings.Backend.MaxRequestsPerSecond),
	})

	cacheDir := settings.Graph.CacheDir
	if cacheDir == "" {
		if cacheDir, err = artifact.DefaultCacheDir(); err != nil {
			return nil, err
		}
	}

	notifier := services.NewNotifier()
	s := &cli.Services{
		Query:  services.NewQueryWorkflow(client, settings.Query.TopK),
		Upload: services.NewUploadWorkflow(client, notifier),
		Visualization: services.NewVisualizationWorkflow(
			client, artifact.NewLoader(cacheDir, settings.Backend.Timeout()),
		).WithOpener(browser.NewOpener()),
		Notifier: notifier,
		Settings: settingsService,
		LogFile:  settings.Log.File,
	}
	if s.LogFile == "" {
		s.LogFile = filepath.Join(configDir, "logs", "vimed.log")
	}
	if settings.Upload.WatchDir != "" {
		s.Watcher = watch.New(settings.Upload.WatchDir, watch.DefaultDebounce)
	}
	return s, nil
}
