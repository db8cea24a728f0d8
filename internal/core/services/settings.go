package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driven"
	"github.com/custodia-labs/idealens/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyBackendURL      = "backend.base_url"
	keyBackendTimeout  = "backend.timeout"
	keySearchProvider  = "search.provider"
	keyEnrichPolicy    = "search.enrich_policy"
	keySummaryProvider = "summary.provider"
	keyChatProvider    = "chat.provider"
	keyChatOrdering    = "chat.ordering"
	keyGitHubToken     = "github.token"
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
)

// settingKeys is the display order of every key accepted by Set.
var settingKeys = []string{
	keyBackendURL,
	keyBackendTimeout,
	keySearchProvider,
	keyEnrichPolicy,
	keySummaryProvider,
	keyChatProvider,
	keyChatOrdering,
	keyGitHubToken,
	keyLLMProvider,
	keyLLMModel,
	keyLLMBaseURL,
	keyLLMAPIKey,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore    driven.ConfigStore
	aiValidator    driven.AIConfigValidator
	backendChecker driven.HealthChecker
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// SetBackendChecker sets the checker used by PingBackend.
func (s *SettingsService) SetBackendChecker(checker driven.HealthChecker) {
	s.backendChecker = checker
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			BaseURL:        s.getString(keyBackendURL, defaults.Backend.BaseURL),
			TimeoutSeconds: s.getInt(keyBackendTimeout, defaults.Backend.TimeoutSeconds),
		},
		Search: domain.SearchSettings{
			Provider:     s.getProvider(keySearchProvider, domain.Provider.CanSearch, defaults.Search.Provider),
			EnrichPolicy: s.getEnrichPolicy(defaults.Search.EnrichPolicy),
		},
		Summary: domain.SummarySettings{
			Provider: s.getProvider(keySummaryProvider, domain.Provider.CanSummarise, defaults.Summary.Provider),
		},
		Chat: domain.ChatSettings{
			Provider: s.getProvider(keyChatProvider, domain.Provider.CanChat, defaults.Chat.Provider),
			Ordering: s.getChatOrdering(defaults.Chat.Ordering),
		},
		GitHub: domain.GitHubSettings{
			Token: s.configStore.GetString(keyGitHubToken),
		},
		LLM: domain.LLMSettings{
			Provider: s.getAIProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyBackendURL, settings.Backend.BaseURL},
		{keyBackendTimeout, settings.Backend.TimeoutSeconds},
		{keySearchProvider, settings.Search.Provider.String()},
		{keyEnrichPolicy, settings.Search.EnrichPolicy.String()},
		{keySummaryProvider, settings.Summary.Provider.String()},
		{keyChatProvider, settings.Chat.Provider.String()},
		{keyChatOrdering, settings.Chat.Ordering.String()},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Secrets are only written when present so an empty form never wipes them.
	if settings.GitHub.Token != "" {
		if err := s.configStore.Set(keyGitHubToken, settings.GitHub.Token); err != nil {
			return fmt.Errorf("save %s: %w", keyGitHubToken, err)
		}
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyLLMAPIKey, err)
		}
	}

	return nil
}

// Set validates and stores a single setting by its config key.
func (s *SettingsService) Set(key, value string) error {
	var stored any = value

	switch key {
	case keyBackendURL, keyLLMBaseURL:
		if value != "" {
			u, err := url.Parse(value)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("%w: %s must be an absolute URL, got %q", domain.ErrInvalidInput, key, value)
			}
		}
	case keyBackendTimeout:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive number of seconds, got %q", domain.ErrInvalidInput, key, value)
		}
		stored = n
	case keySearchProvider:
		if !domain.Provider(value).CanSearch() {
			return fmt.Errorf("%w: %q cannot serve search", domain.ErrUnsupportedProvider, value)
		}
	case keySummaryProvider:
		if !domain.Provider(value).CanSummarise() {
			return fmt.Errorf("%w: %q cannot serve summaries", domain.ErrUnsupportedProvider, value)
		}
	case keyChatProvider:
		if !domain.Provider(value).CanChat() {
			return fmt.Errorf("%w: %q cannot serve chat", domain.ErrUnsupportedProvider, value)
		}
	case keyEnrichPolicy:
		if !domain.EnrichPolicy(value).IsValid() {
			return fmt.Errorf("%w: unknown enrichment policy %q", domain.ErrInvalidInput, value)
		}
	case keyChatOrdering:
		if !domain.ChatOrdering(value).IsValid() {
			return fmt.Errorf("%w: unknown chat ordering %q", domain.ErrInvalidInput, value)
		}
	case keyLLMProvider:
		if !domain.AIProvider(value).IsValid() {
			return fmt.Errorf("%w: unknown LLM provider %q", domain.ErrUnsupportedProvider, value)
		}
	case keyGitHubToken, keyLLMModel, keyLLMAPIKey:
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the config keys accepted by Set, in display order.
func (s *SettingsService) Keys() []string {
	return SettingKeys()
}

// SettingKeys returns every settings key in display order.
func SettingKeys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		defaults := domain.DefaultLLMModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.LLM.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks that every concern has a provider able to serve it.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Backend.BaseURL == "" {
		return fmt.Errorf("%w: %s is empty", domain.ErrInvalidInput, keyBackendURL)
	}

	if settings.NeedsLLM() && !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: summaries or chat use the llm provider but no LLM is configured",
			domain.ErrLLMUnavailable)
	}

	return nil
}

// RequiresLLM returns true if any concern uses the llm provider.
func (s *SettingsService) RequiresLLM() bool {
	settings, err := s.Get()
	if err != nil {
		return false
	}
	return settings.NeedsLLM()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// PingBackend checks the IdeaLens backend is reachable.
// Returns nil when no checker is configured.
func (s *SettingsService) PingBackend(ctx context.Context) error {
	if s.backendChecker == nil {
		return nil
	}
	if err := s.backendChecker.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(
	key string, serves func(domain.Provider) bool, defaultVal domain.Provider,
) domain.Provider {
	provider := domain.Provider(s.configStore.GetString(key))
	if !serves(provider) {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getEnrichPolicy(defaultVal domain.EnrichPolicy) domain.EnrichPolicy {
	policy := domain.EnrichPolicy(s.configStore.GetString(keyEnrichPolicy))
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}

func (s *SettingsService) getChatOrdering(defaultVal domain.ChatOrdering) domain.ChatOrdering {
	ordering := domain.ChatOrdering(s.configStore.GetString(keyChatOrdering))
	if !ordering.IsValid() {
		return defaultVal
	}
	return ordering
}

func (s *SettingsService) getAIProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
