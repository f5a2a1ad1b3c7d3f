// Package backend implements driven.Backend over the knowledge-base
// service's JSON-over-HTTP API.
//
// Every call is a single request: there is no retry, backoff or caching.
// Non-2xx replies become *domain.BackendError carrying the server's
// "error" field; transport failures wrap domain.ErrBackendUnavailable.
//
// The base URL, timeout and rate limit are read from a SettingsSource on
// every call so configuration edits apply without rebuilding the client.
package backend
