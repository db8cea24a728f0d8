package ai

import (
	"context"
	"fmt"

	"github.com/custodia-labs/idealens/internal/core/ports/driven"
)

// Ensure Assistant implements the interfaces.
var (
	_ driven.Assistant        = (*Assistant)(nil)
	_ driven.HealthChecker    = (*Assistant)(nil)
	_ driven.PromptStoreAware = (*Assistant)(nil)
)

const defaultChatSystemPrompt = `You are IdeaLens, an assistant that helps developers find and shape project ideas.
Suggest concrete projects, name existing open source repositories when relevant, and keep answers short.`

const chatTemperature = 0.7

// Assistant answers chat messages with an LLM.
// Every message is answered on its own; earlier turns are not replayed.
type Assistant struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
}

// NewAssistant creates an assistant over the given LLM service.
func NewAssistant(llm driven.LLMService) *Assistant {
	return &Assistant{llm: llm}
}

// SetPromptStore sets where the chat_system prompt is loaded from.
func (a *Assistant) SetPromptStore(store driven.PromptStore) {
	a.promptStore = store
}

// Reply sends message with the system prompt and returns the answer.
func (a *Assistant) Reply(ctx context.Context, message string) (string, error) {
	messages := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: loadPrompt(a.promptStore, driven.PromptChatSystem, defaultChatSystemPrompt)},
		{Role: driven.RoleUser, Content: message},
	}

	reply, err := a.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: chatTemperature})
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return reply, nil
}

// Ping checks the LLM provider is reachable.
func (a *Assistant) Ping(ctx context.Context) error {
	return a.llm.Ping(ctx)
}
