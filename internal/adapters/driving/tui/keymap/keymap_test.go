package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"ctrl+c"}},
		{"next tab", km.NextTab, []string{"tab"}},
		{"prev tab", km.PrevTab, []string{"shift+tab"}},
		{"submit", km.Submit, []string{"enter"}},
		{"reset chat", km.ResetChat, []string{"ctrl+l"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"remove", km.Remove, []string{"x", "delete"}},
		{"upload", km.Upload, []string{"u"}},
		{"open", km.Open, []string{"o"}},
		{"refresh", km.Refresh, []string{"r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.Contains(t, tt.binding.Keys(), k)
			}
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_QuitIsNotPlainQ(t *testing.T) {
	km := DefaultKeyMap()

	// Plain letters must reach the question input.
	assert.NotContains(t, km.Quit.Keys(), "q")
}

func TestKeyMap_ViewHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.ChatHelp(), km.Submit)
	assert.Contains(t, km.UploadHelp(), km.Upload)
	assert.Contains(t, km.GraphHelp(), km.Refresh)
	assert.Len(t, km.ShortHelp(), 2)
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()
	require.Len(t, groups, 4)
	for _, g := range groups {
		assert.NotEmpty(t, g)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("tab", km.NextTab))
	assert.True(t, Matches("delete", km.Remove))
	assert.False(t, Matches("q", km.Quit))
	assert.False(t, Matches("", km.Open))
}
