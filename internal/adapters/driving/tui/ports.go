// Package tui provides an interactive terminal user interface for idealens.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/idealens/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
// The App owns exactly one controller of each kind for its lifetime.
type Ports struct {
	// Search runs idea searches and holds the result set.
	Search driving.SearchController

	// Chat holds the assistant conversation.
	Chat driving.ChatController
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchController
	}
	if p.Chat == nil {
		return ErrMissingChatController
	}
	return nil
}
