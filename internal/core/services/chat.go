package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driven"
	"github.com/custodia-labs/idealens/internal/core/ports/driving"
	"github.com/custodia-labs/idealens/internal/logger"
)

// Ensure ChatSession implements the interface.
var _ driving.ChatController = (*ChatSession)(nil)

// ChatSession is one conversation with the project-idea assistant.
//
// The transcript is append-only. A user message is appended as soon as it is
// submitted; the assistant message follows when its call completes.
type ChatSession struct {
	assistant driven.Assistant
	ordering  domain.ChatOrdering

	mu         sync.Mutex
	input      string
	transcript []domain.ChatMessage

	// tail is closed when the most recent serialized exchange has appended
	// its reply. Nil when nothing is queued.
	tail chan struct{}
}

// NewChatSession creates a chat session.
// An invalid ordering falls back to completion order.
func NewChatSession(assistant driven.Assistant, ordering domain.ChatOrdering) *ChatSession {
	if !ordering.IsValid() {
		ordering = domain.ChatOrderCompletion
	}
	return &ChatSession{
		assistant: assistant,
		ordering:  ordering,
	}
}

// Ordering returns how overlapping exchanges append replies.
func (s *ChatSession) Ordering() domain.ChatOrdering {
	return s.ordering
}

// Submit appends the user message and clears the input buffer.
func (s *ChatSession) Submit(text string) (driving.PendingReply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := domain.ChatMessage{
		ID:     uuid.NewString(),
		Sender: domain.SenderUser,
		Text:   text,
	}
	s.transcript = append(s.transcript, msg)
	s.input = ""

	p := &pendingReply{
		session: s,
		request: msg,
		done:    make(chan struct{}),
	}
	if s.ordering == domain.ChatOrderSerialized {
		p.prev = s.tail
		s.tail = p.done
	}

	logger.Debug("Chat message %s queued (%d in transcript)", msg.ID, len(s.transcript))
	return p, nil
}

// Send submits text and waits for the assistant message.
func (s *ChatSession) Send(ctx context.Context, text string) (domain.ChatMessage, error) {
	p, err := s.Submit(text)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	return p.Await(ctx), nil
}

// SetInput replaces the input buffer.
func (s *ChatSession) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// Input returns the input buffer.
func (s *ChatSession) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SubmitInput submits the current input buffer.
func (s *ChatSession) SubmitInput() (driving.PendingReply, error) {
	return s.Submit(s.Input())
}

// Transcript returns a copy of the transcript in append order.
func (s *ChatSession) Transcript() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// reply asks the assistant and maps failures to the fixed texts.
func (s *ChatSession) reply(ctx context.Context, text string) string {
	logger.Section("Chat")

	reply, err := s.assistant.Reply(ctx, text)
	if err != nil {
		logger.Warn("Assistant call failed: %v", err)
		return domain.ChatErrorReply
	}
	if reply == "" {
		logger.Debug("Assistant returned no usable reply")
		return domain.ChatFallbackReply
	}
	return reply
}

func (s *ChatSession) appendAssistant(text string) domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := domain.ChatMessage{
		ID:     uuid.NewString(),
		Sender: domain.SenderAssistant,
		Text:   text,
	}
	s.transcript = append(s.transcript, msg)
	return msg
}

// pendingReply is the network half of one exchange.
type pendingReply struct {
	session *ChatSession
	request domain.ChatMessage

	// prev is the previous serialized exchange's done channel.
	prev chan struct{}
	done chan struct{}

	once  sync.Once
	reply domain.ChatMessage
}

// Await calls the assistant and appends exactly one assistant message.
// Later calls return the same message without calling again.
func (p *pendingReply) Await(ctx context.Context) domain.ChatMessage {
	p.once.Do(func() {
		defer close(p.done)

		if p.prev != nil {
			select {
			case <-p.prev:
			case <-ctx.Done():
				logger.Warn("Chat message %s abandoned while queued: %v", p.request.ID, ctx.Err())
				p.reply = p.session.appendAssistant(domain.ChatErrorReply)
				return
			}
		}

		p.reply = p.session.appendAssistant(p.session.reply(ctx, p.request.Text))
	})
	return p.reply
}

// Request returns the user message this reply answers.
func (p *pendingReply) Request() domain.ChatMessage {
	return p.request
}
