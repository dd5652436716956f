package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAssistant.IsValid())
	assert.False(t, Role("ai").IsValid())
	assert.Equal(t, "assistant", RoleAssistant.String())
}

func TestNewConversationMessage(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 5, 0, 0, time.UTC)

	msg := NewConversationMessage(RoleUser, "What is hypertension?", at)

	assert.Equal(t, RoleUser, msg.Role)
	assert.Equal(t, "What is hypertension?", msg.Content)
	assert.Equal(t, "09:05", msg.Timestamp)
}

func TestFormatAnswer(t *testing.T) {
	tests := []struct {
		name    string
		results []string
		want    string
	}{
		{"nil results", nil, NoResultsNotice},
		{"empty results", []string{}, NoResultsNotice},
		{"single result", []string{"Hypertension is elevated blood pressure."}, "Hypertension is elevated blood pressure."},
		{"multiple results", []string{"first", "second"}, "first\n\nsecond"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAnswer(tt.results))
		})
	}
}

func TestFormatQueryFailure(t *testing.T) {
	t.Run("request error uses detail", func(t *testing.T) {
		err := &RequestError{Status: 500, Detail: "graph store offline"}

		got := FormatQueryFailure(err)

		assert.Equal(t, "Error: graph store offline. Please check that the backend is running.", got)
	})

	t.Run("transport fault is generic", func(t *testing.T) {
		err := &TransportFault{Op: "search", Err: errors.New("dial tcp: connection refused")}

		got := FormatQueryFailure(err)

		assert.Equal(t, "Error: Search failed: backend unreachable. Please check that the backend is running.", got)
	})
}
