package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/idealens/internal/core/domain"
)

// texts flattens a transcript to "Sender: text" lines.
func texts(msgs []domain.ChatMessage) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = string(m.Sender) + ": " + m.Text
	}
	return out
}

func TestNewChatSession_InvalidOrderingFallsBack(t *testing.T) {
	s := NewChatSession(&mockAssistant{}, domain.ChatOrdering("chaotic"))

	assert.Equal(t, domain.ChatOrderCompletion, s.Ordering())
	assert.Empty(t, s.Transcript())
}

func TestChatSession_Send(t *testing.T) {
	s := NewChatSession(&mockAssistant{}, domain.ChatOrderCompletion)

	reply, err := s.Send(context.Background(), "How do I build a recipe app?")

	require.NoError(t, err)
	assert.Equal(t, domain.SenderAssistant, reply.Sender)
	assert.Equal(t, "Echo: How do I build a recipe app?", reply.Text)

	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, []string{
		"User: How do I build a recipe app?",
		"Assistant: Echo: How do I build a recipe app?",
	}, texts(transcript))
	assert.NotEmpty(t, transcript[0].ID)
	assert.NotEqual(t, transcript[0].ID, transcript[1].ID)
	assert.Equal(t, reply, transcript[1])
}

func TestChatSession_EmptyMessageIsNoOp(t *testing.T) {
	var calls atomic.Int32
	s := NewChatSession(&mockAssistant{
		ReplyFunc: func(_ context.Context, _ string) (string, error) {
			calls.Add(1)
			return "hi", nil
		},
	}, domain.ChatOrderCompletion)
	s.SetInput("   ")

	for _, text := range []string{"", "  ", "\n\t"} {
		_, err := s.Send(context.Background(), text)
		assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	}
	_, err := s.SubmitInput()
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)

	assert.Empty(t, s.Transcript())
	assert.Equal(t, "   ", s.Input(), "ignored submission leaves the buffer alone")
	assert.Zero(t, calls.Load())
}

func TestChatSession_UserMessageAppendedBeforeCall(t *testing.T) {
	release := make(chan struct{})
	s := NewChatSession(&mockAssistant{
		ReplyFunc: func(_ context.Context, _ string) (string, error) {
			<-release
			return "Try a CRUD backend first.", nil
		},
	}, domain.ChatOrderCompletion)
	s.SetInput("recipe app")

	pending, err := s.SubmitInput()
	require.NoError(t, err)

	assert.Equal(t, []string{"User: recipe app"}, texts(s.Transcript()))
	assert.Empty(t, s.Input(), "input buffer is cleared on submit")
	assert.Equal(t, "recipe app", pending.Request().Text)

	close(release)
	reply := pending.Await(context.Background())

	assert.Equal(t, "Try a CRUD backend first.", reply.Text)
	assert.Len(t, s.Transcript(), 2)
}

func TestChatSession_ReplyMapping(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{"usable reply", "Use SQLite.", nil, "Use SQLite."},
		{"empty reply", "", nil, domain.ChatFallbackReply},
		{"whitespace reply is kept", " ", nil, " "},
		{"call failure", "", errors.New("connection reset"), domain.ChatErrorReply},
		{"failure wins over text", "partial", errors.New("status 500"), domain.ChatErrorReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewChatSession(&mockAssistant{
				ReplyFunc: func(_ context.Context, _ string) (string, error) {
					return tt.reply, tt.err
				},
			}, domain.ChatOrderCompletion)

			reply, err := s.Send(context.Background(), "hello")

			require.NoError(t, err)
			assert.Equal(t, tt.want, reply.Text)
			assert.Equal(t, []string{"User: hello", "Assistant: " + tt.want}, texts(s.Transcript()))
		})
	}
}

func TestChatSession_AwaitIsIdempotent(t *testing.T) {
	var calls atomic.Int32
	s := NewChatSession(&mockAssistant{
		ReplyFunc: func(_ context.Context, _ string) (string, error) {
			calls.Add(1)
			return "once", nil
		},
	}, domain.ChatOrderCompletion)

	pending, err := s.Submit("hi")
	require.NoError(t, err)

	first := pending.Await(context.Background())
	second := pending.Await(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
	assert.Len(t, s.Transcript(), 2)
}

func TestChatSession_CompletionOrder(t *testing.T) {
	gates := map[string]chan struct{}{
		"first":  make(chan struct{}),
		"second": make(chan struct{}),
	}
	s := NewChatSession(&mockAssistant{
		ReplyFunc: func(_ context.Context, msg string) (string, error) {
			<-gates[msg]
			return "re: " + msg, nil
		},
	}, domain.ChatOrderCompletion)

	p1, err := s.Submit("first")
	require.NoError(t, err)
	p2, err := s.Submit("second")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); p1.Await(context.Background()) }()
	go func() { defer wg.Done(); p2.Await(context.Background()) }()

	close(gates["second"])
	require.Eventually(t, func() bool { return len(s.Transcript()) == 3 }, time.Second, time.Millisecond)
	close(gates["first"])
	wg.Wait()

	assert.Equal(t, []string{
		"User: first",
		"User: second",
		"Assistant: re: second",
		"Assistant: re: first",
	}, texts(s.Transcript()))
}

func TestChatSession_SerializedOrder(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var started []string
	s := NewChatSession(&mockAssistant{
		ReplyFunc: func(_ context.Context, msg string) (string, error) {
			mu.Lock()
			started = append(started, msg)
			mu.Unlock()
			if msg == "first" {
				<-release
			}
			return "re: " + msg, nil
		},
	}, domain.ChatOrderSerialized)

	p1, err := s.Submit("first")
	require.NoError(t, err)
	p2, err := s.Submit("second")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); p2.Await(context.Background()) }()
	go func() { defer wg.Done(); p1.Await(context.Background()) }()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(started) == 1
	}, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, []string{"first"}, started, "second call waits for the first exchange")
	mu.Unlock()

	close(release)
	wg.Wait()

	assert.Equal(t, []string{
		"User: first",
		"User: second",
		"Assistant: re: first",
		"Assistant: re: second",
	}, texts(s.Transcript()))
}

func TestChatSession_SerializedCancelledWhileQueued(t *testing.T) {
	release := make(chan struct{})
	s := NewChatSession(&mockAssistant{
		ReplyFunc: func(_ context.Context, msg string) (string, error) {
			if msg == "first" {
				<-release
			}
			return "re: " + msg, nil
		},
	}, domain.ChatOrderSerialized)

	p1, err := s.Submit("first")
	require.NoError(t, err)
	p2, err := s.Submit("second")
	require.NoError(t, err)

	done := make(chan domain.ChatMessage)
	go func() { done <- p1.Await(context.Background()) }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reply := p2.Await(ctx)

	assert.Equal(t, domain.ChatErrorReply, reply.Text)

	close(release)
	assert.Equal(t, "re: first", (<-done).Text)
	assert.Len(t, s.Transcript(), 4)
}

func TestChatSession_SerializedSequentialSends(t *testing.T) {
	s := NewChatSession(&mockAssistant{}, domain.ChatOrderSerialized)
	ctx := context.Background()

	for _, msg := range []string{"one", "two", "three"} {
		_, err := s.Send(ctx, msg)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{
		"User: one", "Assistant: Echo: one",
		"User: two", "Assistant: Echo: two",
		"User: three", "Assistant: Echo: three",
	}, texts(s.Transcript()))
}

func TestChatSession_TranscriptIsCopy(t *testing.T) {
	s := NewChatSession(&mockAssistant{}, domain.ChatOrderCompletion)
	_, err := s.Send(context.Background(), "hi")
	require.NoError(t, err)

	transcript := s.Transcript()
	transcript[0].Text = "mutated"

	assert.Equal(t, "hi", s.Transcript()[0].Text)
}
