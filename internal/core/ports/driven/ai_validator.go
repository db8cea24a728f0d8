package driven

import "github.com/custodia-labs/idealens/internal/core/domain"

// AIConfigValidator checks LLM settings before they are saved.
type AIConfigValidator interface {
	// ValidateLLM builds a client from config and pings it.
	// Settings without a provider are accepted as-is.
	ValidateLLM(config *domain.LLMSettings) error
}
