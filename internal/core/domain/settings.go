package domain

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Default client settings.
const (
	DefaultBaseURL        = "http://localhost:8000"
	DefaultTimeoutSeconds = 120
)

// BackendSettings configures the connection to the retrieval service.
type BackendSettings struct {
	// BaseURL is the scheme and host of the backend, without the /api prefix.
	BaseURL string

	// TimeoutSeconds bounds each request. Zero uses the default.
	TimeoutSeconds int

	// MaxRequestsPerSecond throttles outbound calls. Zero means unlimited.
	MaxRequestsPerSecond int
}

// Timeout returns the request timeout as a duration.
func (b BackendSettings) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// QuerySettings configures question answering.
type QuerySettings struct {
	// TopK is the number of passages requested per question.
	TopK int
}

// UploadSettings configures document ingestion.
type UploadSettings struct {
	// WatchDir, when set, is scanned for new PDFs which are staged automatically.
	WatchDir string
}

// GraphSettings configures the visualization artifact cache.
type GraphSettings struct {
	// CacheDir holds fetched artifacts. Empty uses the user cache directory.
	CacheDir string
}

// LogSettings configures the log file used while the TUI owns the terminal.
type LogSettings struct {
	// File is the log file path. Empty uses ~/.vimed/logs/vimed.log.
	File string
}

// ClientSettings holds all user configuration.
type ClientSettings struct {
	Backend BackendSettings
	Query   QuerySettings
	Upload  UploadSettings
	Graph   GraphSettings
	Log     LogSettings
}

// DefaultClientSettings returns settings with default values.
func DefaultClientSettings() *ClientSettings {
	return &ClientSettings{
		Backend: BackendSettings{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Query: QuerySettings{
			TopK: DefaultTopK,
		},
	}
}

// Validate checks that the settings are usable.
func (s *ClientSettings) Validate() error {
	if s.Backend.BaseURL == "" {
		return errors.New("backend base URL is required")
	}
	u, err := url.Parse(s.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("backend base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend base URL must be http or https, got %q", s.Backend.BaseURL)
	}
	if s.Query.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", s.Query.TopK)
	}
	if s.Backend.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("max_rps must not be negative, got %d", s.Backend.MaxRequestsPerSecond)
	}
	return nil
}
