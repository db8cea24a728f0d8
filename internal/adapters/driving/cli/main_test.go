package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/custodia-labs/idealens/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driving"
	"github.com/custodia-labs/idealens/internal/core/services"
)

// fakeCollaborator serves search, summaries and chat from memory.
// Each query has pages pages of six repositories.
type fakeCollaborator struct {
	pages     int
	searchErr error
}

func (f *fakeCollaborator) SearchRepos(_ context.Context, req domain.SearchRequest) ([]domain.Repository, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if req.Page > f.pages {
		return nil, nil
	}
	repos := make([]domain.Repository, req.PageSize)
	for i := range repos {
		name := fmt.Sprintf("acme/%s-%d-%d", strings.ReplaceAll(req.Query, " ", "-"), req.Page, i+1)
		repos[i] = domain.Repository{Name: name, Description: "About " + name, URL: "https://github.com/" + name}
	}
	return repos, nil
}

func (f *fakeCollaborator) Summarize(_ context.Context, repo domain.Repository) (string, error) {
	return "Summary of " + repo.Name, nil
}

func (f *fakeCollaborator) Reply(_ context.Context, message string) (string, error) {
	return "Echo: " + message, nil
}

type mockAIValidator struct {
	err error
}

func (m *mockAIValidator) ValidateLLM(*domain.LLMSettings) error { return m.err }

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) Ping(context.Context) error { return m.err }

type testServices struct {
	collaborator *fakeCollaborator
	settings     *services.SettingsService
	validator    *mockAIValidator
	backend      *mockHealthChecker
	chat         *services.ChatSession
}

// setupTestServices installs services backed by in-memory collaborators and
// returns a cleanup function.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		collaborator: &fakeCollaborator{pages: 2},
		validator:    &mockAIValidator{},
		backend:      &mockHealthChecker{},
	}
	ts.settings = services.NewSettingsService(memory.NewConfigStore(), ts.validator)
	ts.settings.SetBackendChecker(ts.backend)
	ts.chat = services.NewChatSession(ts.collaborator, domain.ChatOrderSerialized)

	appServices = &Services{
		Settings: ts.settings,
		Search: func() (driving.SearchController, error) {
			return services.NewSearchController(ts.collaborator, ts.collaborator, domain.EnrichBestEffort), nil
		},
		Chat: func() (driving.ChatController, error) {
			return ts.chat, nil
		},
	}

	return ts, func() {
		appServices = nil
		searchPages = 1
		searchJSON = false
		mcpHTTPAddr = ""
	}
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
