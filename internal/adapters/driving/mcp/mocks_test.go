package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driving"
)

// mockSearchController is a mock implementation of driving.SearchController.
type mockSearchController struct {
	mu         sync.Mutex
	state      domain.SearchState
	SubmitFunc func(ctx context.Context, query string, mode domain.SubmitMode) error
	submits    []domain.SubmitMode
}

func (m *mockSearchController) Begin(string, domain.SubmitMode) (driving.SearchRun, error) {
	return nil, nil
}

func (m *mockSearchController) Submit(ctx context.Context, query string, mode domain.SubmitMode) error {
	m.mu.Lock()
	m.submits = append(m.submits, mode)
	m.mu.Unlock()
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, query, mode)
	}
	return nil
}

func (m *mockSearchController) setState(state domain.SearchState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
}

func (m *mockSearchController) State() domain.SearchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *mockSearchController) Results() []domain.Repository { return m.State().Results }
func (m *mockSearchController) Cursor() domain.Cursor { return m.State().Cursor }
func (m *mockSearchController) Loading() bool { return m.State().Loading }
func (m *mockSearchController) Query() string { return m.State().Query }

// mockChatController is a mock implementation of driving.ChatController.
type mockChatController struct {
	SendFunc   func(ctx context.Context, text string) (domain.ChatMessage, error)
	transcript []domain.ChatMessage
}

func (m *mockChatController) Submit(string) (driving.PendingReply, error) { return nil, nil }

func (m *mockChatController) Send(ctx context.Context, text string) (domain.ChatMessage, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, text)
	}
	return domain.ChatMessage{ID: "r1", Sender: domain.SenderAssistant, Text: "Echo: " + text}, nil
}

func (m *mockChatController) SetInput(string) {}
func (m *mockChatController) Input() string { return "" }
func (m *mockChatController) SubmitInput() (driving.PendingReply, error) { return nil, nil }
func (m *mockChatController) Transcript() []domain.ChatMessage { return m.transcript }
func (m *mockChatController) Ordering() domain.ChatOrdering { return domain.ChatOrderCompletion }

func repos(names ...string) []domain.Repository {
	out := make([]domain.Repository, len(names))
	for i, n := range names {
		out[i] = domain.Repository{Name: n, URL: "https://github.com/" + n, Summary: "Summary of " + n}
	}
	return out
}
