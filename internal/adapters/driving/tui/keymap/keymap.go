// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// NextTab mounts the next tab.
	NextTab key.Binding

	// PrevTab mounts the previous tab.
	PrevTab key.Binding

	// Submit sends the question or confirms an entry.
	Submit key.Binding

	// ResetChat clears the conversation.
	ResetChat key.Binding

	// Back leaves an entry mode.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// AddPath opens the path entry for dropping files.
	AddPath key.Binding

	// Browse opens the file picker.
	Browse key.Binding

	// Remove drops the selected staged file.
	Remove key.Binding

	// Upload submits the staged batch.
	Upload key.Binding

	// Open shows the graph in the system browser.
	Open key.Binding

	// Refresh reloads the graph.
	Refresh key.Binding

	// Dismiss hides the active notification.
	Dismiss key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		ResetChat: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear chat"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		AddPath: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add path"),
		),
		Browse: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "browse"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
	}
}

// ShortHelp returns the bindings available everywhere.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Quit}
}

// ChatHelp returns keybindings for the chat view.
func (k *KeyMap) ChatHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ResetChat, k.NextTab, k.Quit}
}

// UploadHelp returns keybindings for the upload view.
func (k *KeyMap) UploadHelp() []key.Binding {
	return []key.Binding{k.AddPath, k.Browse, k.Remove, k.Upload, k.NextTab}
}

// GraphHelp returns keybindings for the graph view.
func (k *KeyMap) GraphHelp() []key.Binding {
	return []key.Binding{k.Open, k.Refresh, k.NextTab, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Quit},
		{k.Submit, k.ResetChat},
		{k.Up, k.Down, k.AddPath, k.Browse, k.Remove, k.Upload},
		{k.Open, k.Refresh, k.Dismiss},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
