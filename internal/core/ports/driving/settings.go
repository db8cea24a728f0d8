package driving

import (
	"context"

	"github.com/custodia-labs/idealens/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set validates and stores a single setting by its config key.
	Set(key, value string) error

	// Keys returns the config keys accepted by Set, in display order.
	Keys() []string

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks that every concern has a provider able to serve it.
	Validate() error

	// RequiresLLM returns true if any concern uses the llm provider.
	RequiresLLM() bool

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error

	// PingBackend checks the IdeaLens backend is reachable.
	PingBackend(ctx context.Context) error
}
