package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/idealens/internal/core/domain"
)

func TestNewConfigValidator(t *testing.T) {
	validator := NewConfigValidator()

	require.NotNil(t, validator)
}

func TestConfigValidator_ValidateLLM_NilConfig(t *testing.T) {
	validator := NewConfigValidator()

	// Nothing to validate.
	assert.NoError(t, validator.ValidateLLM(nil))
}

func TestConfigValidator_ValidateLLM_UnconfiguredProvider(t *testing.T) {
	validator := NewConfigValidator()

	err := validator.ValidateLLM(&domain.LLMSettings{Model: "test-model"})

	assert.NoError(t, err)
}

func TestConfigValidator_ValidateLLM_Delegates(t *testing.T) {
	var got *domain.LLMSettings
	validator := &ConfigValidator{validate: func(s *domain.LLMSettings) error {
		got = s
		return errors.New("unreachable")
	}}
	cfg := &domain.LLMSettings{Provider: domain.AIProviderOllama}

	err := validator.ValidateLLM(cfg)

	assert.EqualError(t, err, "unreachable")
	assert.Same(t, cfg, got)
}
