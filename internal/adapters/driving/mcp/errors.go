// Package mcp provides an MCP (Model Context Protocol) server adapter for newsum.
// It lets AI assistants search news, query the article index and request summaries.
package mcp

import "errors"

var (
	// ErrMissingSessionService is returned when the session service is not provided.
	ErrMissingSessionService = errors.New("mcp: session service is required")

	// ErrMissingSummaryService is returned by summarize_articles when no summary service is set.
	ErrMissingSummaryService = errors.New("mcp: summary service is required")
)
