package domain

// Sender identifies who authored a chat message.
type Sender string

// Chat participants.
const (
	SenderUser      Sender = "User"
	SenderAssistant Sender = "Assistant"
)

// Fixed assistant texts used when the assistant call does not yield a reply.
const (
	// ChatFallbackReply is shown when the assistant answered without a usable reply.
	ChatFallbackReply = "No reply"

	// ChatErrorReply is shown when the assistant call failed.
	ChatErrorReply = "Error sending message."
)

// ChatMessage is one entry in the append-only transcript.
type ChatMessage struct {
	// ID uniquely identifies the message within the process.
	ID string `json:"id"`

	// Sender is the author.
	Sender Sender `json:"sender"`

	// Text is the message body.
	Text string `json:"text"`
}

// IsUser reports whether the user wrote the message.
func (m ChatMessage) IsUser() bool {
	return m.Sender == SenderUser
}

// ChatOrdering decides how concurrent chat exchanges append their replies.
type ChatOrdering string

// Available chat orderings.
const (
	// ChatOrderCompletion appends each reply when its call completes.
	// Replies to overlapping sends may appear in a different order than the sends.
	ChatOrderCompletion ChatOrdering = "completion"

	// ChatOrderSerialized runs exchanges one after another in send order,
	// so every reply directly follows the reply to the previous send.
	ChatOrderSerialized ChatOrdering = "serialized"
)

// IsValid returns true if the ordering is recognised.
func (o ChatOrdering) IsValid() bool {
	return o == ChatOrderCompletion || o == ChatOrderSerialized
}

// String returns the string representation.
func (o ChatOrdering) String() string {
	return string(o)
}

// Description returns a human-readable description of the ordering.
func (o ChatOrdering) Description() string {
	switch o {
	case ChatOrderCompletion:
		return "Completion order (replies appear as they arrive)"
	case ChatOrderSerialized:
		return "Serialized (one exchange at a time, in send order)"
	default:
		return unknownDescription
	}
}
