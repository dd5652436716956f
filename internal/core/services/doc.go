// Package services implements the client workflows.
//
// Each workflow is a small state machine guarded by a mutex. Long-running
// backend calls are split out of the state transitions: Begin validates and
// records intent, Execute performs the call without touching state, and
// Settle applies the outcome. The TUI runs Execute inside a tea.Cmd and feeds
// the result back through Update; the CLI calls Submit, which runs all three
// in sequence.
package services
