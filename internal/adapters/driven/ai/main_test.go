package ai

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/idealens/internal/core/ports/driven"
)

type mockLLM struct {
	mu           sync.Mutex
	GenerateFunc func(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error)
	ChatFunc     func(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error)
	PingFunc     func(ctx context.Context) error
	prompts      []string
	chats        [][]driven.ChatMessage
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, opts)
	}
	return "generated", nil
}

func (m *mockLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	m.chats = append(m.chats, messages)
	m.mu.Unlock()
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages, opts)
	}
	return "chatted", nil
}

func (m *mockLLM) ModelName() string { return "mock-model" }

func (m *mockLLM) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *mockLLM) Close() error { return nil }

type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("prompt not found")
}

func (m *mockPromptStore) Reload() {}
