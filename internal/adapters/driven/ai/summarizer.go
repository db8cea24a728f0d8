package ai

import (
	"context"
	"fmt"

	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driven"
	"github.com/custodia-labs/idealens/internal/logger"
	"github.com/custodia-labs/idealens/internal/normalisers"
)

// Ensure Summarizer implements the interfaces.
var (
	_ driven.Summarizer       = (*Summarizer)(nil)
	_ driven.PromptStoreAware = (*Summarizer)(nil)
)

const defaultSummarisePrompt = `Summarise this GitHub repository in two sentences for someone looking for a project idea.

Repository: %s
Description: %s
URL: %s

Summary:`

const (
	summaryMaxTokens   = 160
	summaryTemperature = 0.3
	noDescription      = "(none)"
)

// Summarizer produces repository summaries with an LLM.
type Summarizer struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
}

// NewSummarizer creates a summariser over the given LLM service.
func NewSummarizer(llm driven.LLMService) *Summarizer {
	return &Summarizer{llm: llm}
}

// SetPromptStore sets where the summarise_repo template is loaded from.
func (s *Summarizer) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Summarize asks the LLM for a short summary of repo.
// Markup in the reply is flattened to a single plain line.
func (s *Summarizer) Summarize(ctx context.Context, repo domain.Repository) (string, error) {
	description := repo.Description
	if description == "" {
		description = noDescription
	}

	template := loadPrompt(s.promptStore, driven.PromptSummariseRepo, defaultSummarisePrompt)
	prompt := fmt.Sprintf(template, repo.Name, description, repo.URL)

	summary, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("summarise %s: %w", repo.Name, err)
	}

	summary = normalisers.Summary(summary)
	logger.Debug("Summarised %s with %s (%d chars)", repo.Name, s.llm.ModelName(), len(summary))
	return summary, nil
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func loadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil {
		logger.Debug("Prompt %s unavailable, using default: %v", name, err)
		return fallback
	}
	return prompt
}
