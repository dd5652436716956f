package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driven"
	"github.com/vimed-graphrag/vimed-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyBaseURL  = "backend.base_url"
	keyTimeout  = "backend.timeout_seconds"
	keyMaxRPS   = "backend.max_rps"
	keyTopK     = "query.top_k"
	keyWatchDir = "upload.watch_dir"
	keyCacheDir = "graph.cache_dir"
	keyLogFile  = "log.file"
)

// settingKeys lists every key in display order.
var settingKeys = []string{
	keyBaseURL,
	keyTimeout,
	keyMaxRPS,
	keyTopK,
	keyWatchDir,
	keyCacheDir,
	keyLogFile,
}

// intKeys are the keys holding integers.
var intKeys = map[string]bool{
	keyTimeout: true,
	keyMaxRPS:  true,
	keyTopK:    true,
}

// SettingsService manages client settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings, falling back to defaults for unset keys.
func (s *SettingsService) Get() (*domain.ClientSettings, error) {
	defaults := domain.DefaultClientSettings()

	return &domain.ClientSettings{
		Backend: domain.BackendSettings{
			BaseURL:              strings.TrimRight(s.getString(keyBaseURL, defaults.Backend.BaseURL), "/"),
			TimeoutSeconds:       s.getInt(keyTimeout, defaults.Backend.TimeoutSeconds),
			MaxRequestsPerSecond: s.configStore.GetInt(keyMaxRPS),
		},
		Query: domain.QuerySettings{
			TopK: s.getInt(keyTopK, defaults.Query.TopK),
		},
		Upload: domain.UploadSettings{
			WatchDir: s.configStore.GetString(keyWatchDir),
		},
		Graph: domain.GraphSettings{
			CacheDir: s.configStore.GetString(keyCacheDir),
		},
		Log: domain.LogSettings{
			File: s.configStore.GetString(keyLogFile),
		},
	}, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.ClientSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	values := []struct {
		key string
		val any
	}{
		{keyBaseURL, settings.Backend.BaseURL},
		{keyTimeout, settings.Backend.TimeoutSeconds},
		{keyMaxRPS, settings.Backend.MaxRequestsPerSecond},
		{keyTopK, settings.Query.TopK},
		{keyWatchDir, settings.Upload.WatchDir},
		{keyCacheDir, settings.Graph.CacheDir},
		{keyLogFile, settings.Log.File},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.val); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting by key. The value is parsed to the key's
// type and the resulting settings validated before anything is stored.
func (s *SettingsService) Set(key, value string) error {
	if !s.isKnown(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrValidation, key)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	var n int
	if intKeys[key] {
		n, err = strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, key)
		}
	}

	switch key {
	case keyBaseURL:
		settings.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(value), "/")
	case keyTimeout:
		settings.Backend.TimeoutSeconds = n
	case keyMaxRPS:
		settings.Backend.MaxRequestsPerSecond = n
	case keyTopK:
		settings.Query.TopK = n
	case keyWatchDir:
		settings.Upload.WatchDir = value
	case keyCacheDir:
		settings.Graph.CacheDir = value
	case keyLogFile:
		settings.Log.File = value
	}

	return s.Save(settings)
}

// Keys lists the recognised setting keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// ConfigPath returns the configuration file location.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) isKnown(key string) bool {
	for _, k := range settingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}
