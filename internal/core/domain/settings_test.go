package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultClientSettings(t *testing.T) {
	s := DefaultClientSettings()

	assert.Equal(t, DefaultBaseURL, s.Backend.BaseURL)
	assert.Equal(t, DefaultTopK, s.Query.TopK)
	assert.Equal(t, 120*time.Second, s.Backend.Timeout())
	assert.NoError(t, s.Validate())
}

func TestBackendSettings_Timeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, BackendSettings{TimeoutSeconds: 30}.Timeout())
	assert.Equal(t, 120*time.Second, BackendSettings{}.Timeout())
}

func TestClientSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *ClientSettings)
		wantErr bool
	}{
		{"defaults", func(*ClientSettings) {}, false},
		{"https", func(s *ClientSettings) { s.Backend.BaseURL = "https://vimed.example.org" }, false},
		{"empty base url", func(s *ClientSettings) { s.Backend.BaseURL = "" }, true},
		{"bad scheme", func(s *ClientSettings) { s.Backend.BaseURL = "ftp://host" }, true},
		{"zero top_k", func(s *ClientSettings) { s.Query.TopK = 0 }, true},
		{"negative rps", func(s *ClientSettings) { s.Backend.MaxRequestsPerSecond = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultClientSettings()
			tt.mutate(s)

			err := s.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
