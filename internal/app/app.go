// Package app assembles IdeaLens: it reads settings and builds the
// collaborators each concern is configured with, then hands the controllers
// to the driving adapters.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/custodia-labs/idealens/internal/adapters/driven/ai"
	"github.com/custodia-labs/idealens/internal/adapters/driven/backend"
	"github.com/custodia-labs/idealens/internal/adapters/driven/config/file"
	"github.com/custodia-labs/idealens/internal/adapters/driven/github"
	"github.com/custodia-labs/idealens/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driven"
	"github.com/custodia-labs/idealens/internal/core/ports/driving"
	"github.com/custodia-labs/idealens/internal/core/services"
	"github.com/custodia-labs/idealens/internal/logger"
)

// Options controls where settings come from.
type Options struct {
	// ConfigDir holds config.toml and prompts/ (default ~/.idealens).
	ConfigDir string

	// Ephemeral keeps settings in memory, seeded from the environment.
	// Nothing is written to disk.
	Ephemeral bool
}

// Container owns the configured collaborators.
type Container struct {
	configStore driven.ConfigStore
	prompts     driven.PromptStore
	settings    *services.SettingsService

	mu      sync.Mutex
	backend *backend.Client
	llm     driven.LLMService
}

// New loads settings and prepares a container. Collaborators are built
// on first use so that settings commands work with a broken configuration.
func New(opts Options) (*Container, error) {
	c := &Container{}

	if opts.Ephemeral {
		c.configStore = memory.NewConfigStoreFrom(file.FromEnvironment(services.SettingKeys(), os.LookupEnv))
	} else {
		store, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		c.configStore = store

		promptDir := ""
		if opts.ConfigDir != "" {
			promptDir = filepath.Join(opts.ConfigDir, "prompts")
		}
		prompts, err := file.NewPromptStore(promptDir)
		if err != nil {
			return nil, fmt.Errorf("open prompts: %w", err)
		}
		c.prompts = prompts
	}

	c.settings = services.NewSettingsService(c.configStore, ai.NewConfigValidator())
	c.settings.SetBackendChecker(backendChecker{c})
	return c, nil
}

// Settings returns the settings service.
func (c *Container) Settings() driving.SettingsService {
	return c.settings
}

// SearchController builds a search controller from the current settings.
func (c *Container) SearchController() (driving.SearchController, error) {
	settings, err := c.settings.Get()
	if err != nil {
		return nil, err
	}

	searcher, err := c.repoSearcher(settings)
	if err != nil {
		return nil, err
	}
	summarizer, err := c.summarizer(settings)
	if err != nil {
		return nil, err
	}

	logger.Debug("Search: provider=%s summary=%s policy=%s",
		settings.Search.Provider, settings.Summary.Provider, settings.Search.EnrichPolicy)
	return services.NewSearchController(searcher, summarizer, settings.Search.EnrichPolicy), nil
}

// ChatSession builds a chat session from the current settings.
func (c *Container) ChatSession() (driving.ChatController, error) {
	settings, err := c.settings.Get()
	if err != nil {
		return nil, err
	}

	assistant, err := c.assistant(settings)
	if err != nil {
		return nil, err
	}

	logger.Debug("Chat: provider=%s ordering=%s", settings.Chat.Provider, settings.Chat.Ordering)
	return services.NewChatSession(assistant, settings.Chat.Ordering), nil
}

// Close releases the collaborators built so far.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.backend != nil {
		errs = append(errs, c.backend.Close())
	}
	if c.llm != nil {
		errs = append(errs, c.llm.Close())
	}
	return errors.Join(errs...)
}

func (c *Container) repoSearcher(settings *domain.AppSettings) (driven.RepoSearcher, error) {
	switch settings.Search.Provider {
	case domain.ProviderBackend:
		return c.backendClient(settings)
	case domain.ProviderGitHub:
		return github.NewSearcher(github.Config{
			Token:   settings.GitHub.Token,
			Timeout: timeout(settings),
		})
	default:
		return nil, fmt.Errorf("%w: search.provider=%s", domain.ErrUnsupportedProvider, settings.Search.Provider)
	}
}

func (c *Container) summarizer(settings *domain.AppSettings) (driven.Summarizer, error) {
	switch settings.Summary.Provider {
	case domain.ProviderBackend:
		return c.backendClient(settings)
	case domain.ProviderLLM:
		llm, err := c.llmService(settings)
		if err != nil {
			return nil, err
		}
		s := ai.NewSummarizer(llm)
		if c.prompts != nil {
			s.SetPromptStore(c.prompts)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: summary.provider=%s", domain.ErrUnsupportedProvider, settings.Summary.Provider)
	}
}

func (c *Container) assistant(settings *domain.AppSettings) (driven.Assistant, error) {
	switch settings.Chat.Provider {
	case domain.ProviderBackend:
		return c.backendClient(settings)
	case domain.ProviderLLM:
		llm, err := c.llmService(settings)
		if err != nil {
			return nil, err
		}
		a := ai.NewAssistant(llm)
		if c.prompts != nil {
			a.SetPromptStore(c.prompts)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: chat.provider=%s", domain.ErrUnsupportedProvider, settings.Chat.Provider)
	}
}

func (c *Container) backendClient(settings *domain.AppSettings) (*backend.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, nil
	}
	client, err := backend.NewClient(backend.Config{
		BaseURL: settings.Backend.BaseURL,
		Timeout: timeout(settings),
	})
	if err != nil {
		return nil, err
	}
	c.backend = client
	return client, nil
}

func (c *Container) llmService(settings *domain.AppSettings) (driven.LLMService, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.llm != nil {
		return c.llm, nil
	}
	svc, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: run 'idealens settings llm' to configure one", domain.ErrLLMUnavailable)
	}
	c.llm = svc
	return svc, nil
}

// backendChecker pings the backend configured at the time of the call.
type backendChecker struct {
	c *Container
}

func (b backendChecker) Ping(ctx context.Context) error {
	settings, err := b.c.settings.Get()
	if err != nil {
		return err
	}
	client, err := backend.NewClient(backend.Config{
		BaseURL: settings.Backend.BaseURL,
		Timeout: timeout(settings),
	})
	if err != nil {
		return err
	}
	return client.Ping(ctx)
}

func timeout(settings *domain.AppSettings) time.Duration {
	return time.Duration(settings.Backend.TimeoutSeconds) * time.Second
}
