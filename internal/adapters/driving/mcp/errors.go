// Package mcp provides an MCP (Model Context Protocol) server adapter for IdeaLens.
// It lets AI assistants search for project-idea repositories and talk to the
// IdeaLens assistant.
package mcp

import "errors"

var (
	// ErrMissingSearchController is returned when no search controller is provided.
	ErrMissingSearchController = errors.New("mcp: search controller is required")

	// ErrChatUnavailable is returned by the chat tool when no chat session is configured.
	ErrChatUnavailable = errors.New("mcp: chat is not configured")

	// ErrNoSearch is returned by load_more before any search has run.
	ErrNoSearch = errors.New("mcp: no search to continue, call search_ideas first")

	// ErrNoMoreResults is returned by load_more when the last page was empty.
	ErrNoMoreResults = errors.New("mcp: no more results for this idea")
)
