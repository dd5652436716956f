// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Backend: The retrieval service (search, ingest, graph endpoint)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ArtifactLoader: Fetches the graph document. Without it the graph view
//     reports every attempt as unavailable.
//   - Opener: Hands a file or URL to the desktop. Without it the graph view
//     only shows the artifact location.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
