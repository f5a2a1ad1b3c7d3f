// Package mcp provides an MCP (Model Context Protocol) server adapter for siteassist.
// It lets AI assistants chat with the site assistant and feed its knowledge base.
package mcp

import "errors"

var (
	// ErrMissingChatService is returned when the chat service is not provided.
	ErrMissingChatService = errors.New("mcp: chat service is required")

	// ErrMissingIngestService is returned when the ingest service is not provided.
	ErrMissingIngestService = errors.New("mcp: ingest service is required")
)
