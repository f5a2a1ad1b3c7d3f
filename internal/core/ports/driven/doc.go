// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Backend: the knowledge-base HTTP service (classification, processing,
//     chat, description and product management)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ActivityStore: Local audit trail of submissions. Without it nothing is recorded.
//   - ConfigWatcher: Change notification for the configuration file.
//   - Normaliser: Text extraction for one family of local file formats.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
