// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// SearchController and ChatSession hold the only mutable view state in the
// application. Each guards its state with a mutex so the TUI event loop, the
// CLI and the MCP server can all drive it.
package services
