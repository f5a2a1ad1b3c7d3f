// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Validation runs here before any backend call, so a rejected input never
// reaches the network. Backend mutations are recorded in the activity log
// when one is configured; chat exchanges are not.
package services
