package ai

import (
	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates AI provider configurations.
type ConfigValidator struct {
	validate func(*domain.LLMSettings) error
}

// NewConfigValidator creates a validator that pings the configured provider.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{validate: ValidateLLMConfig}
}

// ValidateLLM validates an LLM configuration by pinging the provider.
func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	return v.validate(config)
}
