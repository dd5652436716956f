// Package driving defines interfaces that external actors (TUI, CLI) use
// to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// Each workflow splits a request into Begin, Execute and Settle so a UI loop
// can record the request synchronously, run the network call elsewhere and
// apply the outcome back on its own goroutine.
//
// Implementations of these interfaces live in internal/core/services.
package driving
