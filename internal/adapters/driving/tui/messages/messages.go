// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/idealens/internal/core/domain"
)

// SearchFinished is sent when a search run has committed its outcome to the
// controller. The view reads the new state from the controller.
type SearchFinished struct {
	Mode domain.SubmitMode
	Page int
}

// ChatReplied carries the assistant message appended by a completed exchange.
type ChatReplied struct {
	Message domain.ChatMessage
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the idea input and results view.
	ViewSearch ViewType = iota
	// ViewChat is the assistant transcript and input view.
	ViewChat
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewChat:
		return "chat"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
