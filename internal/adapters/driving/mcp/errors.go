// Package mcp provides an MCP (Model Context Protocol) server adapter for leadlens.
// It enables AI assistants to run lead enrichments and browse stored results.
package mcp

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("mcp: session service is required")
