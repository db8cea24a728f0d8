package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/idealens/internal/core/ports/driven"
	"github.com/custodia-labs/idealens/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptSummariseRepo: `Summarise this GitHub repository in two or three sentences for someone looking for a starting point for their project idea.
Say what it does and who would find it useful. Do not repeat the URL.

Repository: %s
Description: %s
URL: %s

Summary:`,

	driven.PromptChatSystem: `You are the IdeaLens assistant. You help people turn rough project ideas into concrete plans.

When answering:
1. Suggest features, architecture and technologies that fit the idea
2. Point out existing open-source projects worth studying when you know of them
3. Keep answers short and practical, using markdown lists where they help
4. Ask one clarifying question when the idea is too vague to advise on`,
}

// placeholders is the number of %s verbs each template must carry.
var placeholders = map[string]int{
	driven.PromptSummariseRepo: 3,
	driven.PromptChatSystem:    0,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.idealens/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// A customised file with the wrong number of placeholders is ignored in
// favour of the embedded default.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	if want, ok := placeholders[name]; ok && strings.Count(prompt, "%s") != want {
		logger.Warn("Prompt %s.txt needs %d %%s placeholders, using the built-in prompt", name, want)
		prompt = defaultPrompts[name]
	}

	// Double-check so concurrent loads agree on one value.
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+".txt"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# IdeaLens Prompts

These prompts are used when summaries or chat are served by the llm provider
(` + "`idealens settings set summary.provider llm`" + `).

## Files

- ` + "`summarise_repo.txt`" + ` - Summarises one repository in the result list
- ` + "`chat_system.txt`" + ` - System prompt for the project-idea assistant

## Customisation

Edit any file to customise LLM behaviour. Changes take effect on the next
command or after restarting the TUI.

## Format Placeholders

` + "`summarise_repo.txt`" + ` must contain exactly three ` + "`%s`" + ` placeholders,
filled with the repository name, description and URL in that order.
A file with a different count is ignored and the built-in prompt is used.
`
	return os.WriteFile(path, []byte(content), 0600)
}
