package driving

import (
	"context"

	"github.com/custodia-labs/idealens/internal/core/domain"
)

// ChatController holds one assistant conversation.
//
// Like SearchController, sending is split: Submit appends the user message
// immediately and the returned PendingReply waits for the assistant.
type ChatController interface {
	// Submit appends the user message and clears the input buffer.
	// It returns domain.ErrEmptyMessage for blank text without changing state.
	Submit(text string) (PendingReply, error)

	// Send is Submit followed by Await. It returns the appended assistant message.
	Send(ctx context.Context, text string) (domain.ChatMessage, error)

	// SetInput replaces the input buffer.
	SetInput(text string)

	// Input returns the input buffer.
	Input() string

	// SubmitInput submits the current input buffer.
	SubmitInput() (PendingReply, error)

	// Transcript returns a copy of the transcript in append order.
	Transcript() []domain.ChatMessage

	// Ordering returns how overlapping exchanges append replies.
	Ordering() domain.ChatOrdering
}

// PendingReply is the network half of one chat exchange.
type PendingReply interface {
	// Await calls the assistant and appends exactly one assistant message,
	// which it also returns. Every PendingReply must be awaited once.
	Await(ctx context.Context) domain.ChatMessage

	// Request returns the user message this reply answers.
	Request() domain.ChatMessage
}
