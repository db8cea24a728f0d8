package domain

const unknownDescription = "Unknown"

// Default connection values for the IdeaLens backend.
const (
	DefaultBackendURL     = "http://127.0.0.1:8000"
	DefaultBackendTimeout = 60
)

// Provider identifies which collaborator implementation serves a concern.
type Provider string

// Available collaborator providers.
const (
	// ProviderBackend is the IdeaLens HTTP backend (/search, /summarize, /chat).
	ProviderBackend Provider = "backend"

	// ProviderGitHub queries the GitHub repository search API directly.
	ProviderGitHub Provider = "github"

	// ProviderLLM uses the configured LLM provider directly.
	ProviderLLM Provider = "llm"
)

// IsValid returns true if the provider is recognised.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderBackend, ProviderGitHub, ProviderLLM:
		return true
	default:
		return false
	}
}

// CanSearch returns true if the provider can serve repository search.
func (p Provider) CanSearch() bool {
	return p == ProviderBackend || p == ProviderGitHub
}

// CanSummarise returns true if the provider can serve repository summaries.
func (p Provider) CanSummarise() bool {
	return p == ProviderBackend || p == ProviderLLM
}

// CanChat returns true if the provider can serve the assistant.
func (p Provider) CanChat() bool {
	return p == ProviderBackend || p == ProviderLLM
}

// RequiresLLM returns true if this provider needs an LLM configuration.
func (p Provider) RequiresLLM() bool {
	return p == ProviderLLM
}

// String returns the string representation.
func (p Provider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p Provider) Description() string {
	switch p {
	case ProviderBackend:
		return "IdeaLens backend"
	case ProviderGitHub:
		return "GitHub search API"
	case ProviderLLM:
		return "LLM (direct)"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an AI service provider for the LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// BackendSettings holds the IdeaLens backend connection.
type BackendSettings struct {
	// BaseURL is the backend root, e.g. http://127.0.0.1:8000.
	BaseURL string

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Provider serves repository search (backend or github).
	Provider Provider

	// EnrichPolicy decides how summary failures affect a page.
	EnrichPolicy EnrichPolicy
}

// SummarySettings holds enrichment configuration.
type SummarySettings struct {
	// Provider serves repository summaries (backend or llm).
	Provider Provider
}

// ChatSettings holds assistant configuration.
type ChatSettings struct {
	// Provider serves the assistant (backend or llm).
	Provider Provider

	// Ordering decides how overlapping exchanges append replies.
	Ordering ChatOrdering
}

// GitHubSettings holds direct GitHub search configuration.
type GitHubSettings struct {
	// Token is an optional API token; unauthenticated search works with lower quotas.
	Token string
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Backend holds the IdeaLens backend connection.
	Backend BackendSettings

	// Search holds search behaviour settings.
	Search SearchSettings

	// Summary holds enrichment settings.
	Summary SummarySettings

	// Chat holds assistant settings.
	Chat ChatSettings

	// GitHub holds direct GitHub search settings.
	GitHub GitHubSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings
}

// NeedsLLM returns true if any concern is served by the LLM provider.
func (s AppSettings) NeedsLLM() bool {
	return s.Summary.Provider.RequiresLLM() || s.Chat.Provider.RequiresLLM()
}

// DefaultAppSettings returns settings with sensible defaults.
// Every concern is served by the IdeaLens backend; the LLM is left
// unconfigured until the user sets it up.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			BaseURL:        DefaultBackendURL,
			TimeoutSeconds: DefaultBackendTimeout,
		},
		Search: SearchSettings{
			Provider:     ProviderBackend,
			EnrichPolicy: EnrichBestEffort,
		},
		Summary: SummarySettings{
			Provider: ProviderBackend,
		},
		Chat: ChatSettings{
			Provider: ProviderBackend,
			Ordering: ChatOrderCompletion,
		},
		LLM: LLMSettings{},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}
