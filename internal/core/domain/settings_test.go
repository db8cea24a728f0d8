package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestProvider_Capabilities tests which concerns each provider can serve
func TestProvider_Capabilities(t *testing.T) {
	tests := []struct {
		name      string
		provider  Provider
		valid     bool
		search    bool
		summarise bool
		chat      bool
	}{
		{"backend serves everything", ProviderBackend, true, true, true, true},
		{"github only searches", ProviderGitHub, true, true, false, false},
		{"llm summarises and chats", ProviderLLM, true, false, true, true},
		{"unknown serves nothing", Provider("carrier-pigeon"), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.provider.IsValid())
			assert.Equal(t, tt.search, tt.provider.CanSearch())
			assert.Equal(t, tt.summarise, tt.provider.CanSummarise())
			assert.Equal(t, tt.chat, tt.provider.CanChat())
		})
	}
}

// TestAIProvider_RequiresAPIKey tests API key requirements per provider
func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
	assert.True(t, AIProviderOllama.IsLocal())
}

// TestLLMSettings_IsConfigured tests LLM configuration detection
func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		expected bool
	}{
		{"empty", LLMSettings{}, false},
		{"ollama without key", LLMSettings{Provider: AIProviderOllama}, true},
		{"openai without key", LLMSettings{Provider: AIProviderOpenAI}, false},
		{"openai with key", LLMSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"}, true},
		{"invalid provider", LLMSettings{Provider: "skynet", APIKey: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

// TestDefaultAppSettings tests the defaults route everything through the backend
func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultBackendURL, s.Backend.BaseURL)
	assert.Equal(t, DefaultBackendTimeout, s.Backend.TimeoutSeconds)
	assert.Equal(t, ProviderBackend, s.Search.Provider)
	assert.Equal(t, EnrichBestEffort, s.Search.EnrichPolicy)
	assert.Equal(t, ProviderBackend, s.Summary.Provider)
	assert.Equal(t, ProviderBackend, s.Chat.Provider)
	assert.Equal(t, ChatOrderCompletion, s.Chat.Ordering)
	assert.False(t, s.LLM.IsConfigured())
	assert.False(t, s.NeedsLLM())
}

// TestAppSettings_NeedsLLM tests LLM requirement detection
func TestAppSettings_NeedsLLM(t *testing.T) {
	s := DefaultAppSettings()
	s.Chat.Provider = ProviderLLM

	assert.True(t, s.NeedsLLM())
}

// TestDefaultLLMModels tests every LLM provider has a default model
func TestDefaultLLMModels(t *testing.T) {
	models := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, models[p], "provider %s needs a default model", p)
	}
}
