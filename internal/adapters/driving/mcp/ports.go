package mcp

import (
	"github.com/custodia-labs/idealens/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search runs idea searches. Required.
	Search driving.SearchController

	// Chat is the assistant conversation. Optional.
	Chat driving.ChatController
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchController
	}
	return nil
}
