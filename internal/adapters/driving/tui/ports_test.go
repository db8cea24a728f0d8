package tui

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/services"
)

// fakeCollaborator serves one page of six repositories, summaries and replies.
type fakeCollaborator struct{}

func (fakeCollaborator) SearchRepos(_ context.Context, req domain.SearchRequest) ([]domain.Repository, error) {
	if req.Page > 1 {
		return nil, nil
	}
	repos := make([]domain.Repository, req.PageSize)
	for i := range repos {
		name := fmt.Sprintf("acme/repo%d", i+1)
		repos[i] = domain.Repository{Name: name, URL: "https://github.com/" + name}
	}
	return repos, nil
}

func (fakeCollaborator) Summarize(_ context.Context, repo domain.Repository) (string, error) {
	return "Summary of " + repo.Name, nil
}

func (fakeCollaborator) Reply(_ context.Context, _ string) (string, error) {
	return "Sure", nil
}

func newTestPorts() *Ports {
	return &Ports{
		Search: services.NewSearchController(fakeCollaborator{}, fakeCollaborator{}, domain.EnrichBestEffort),
		Chat:   services.NewChatSession(fakeCollaborator{}, domain.ChatOrderCompletion),
	}
}

func TestPorts_Validate(t *testing.T) {
	valid := newTestPorts()

	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"all set", valid, nil},
		{"missing search", &Ports{Chat: valid.Chat}, ErrMissingSearchController},
		{"missing chat", &Ports{Search: valid.Search}, ErrMissingChatController},
		{"empty", &Ports{}, ErrMissingSearchController},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Equal(t, "tui: search controller is required", ErrMissingSearchController.Error())
	assert.Equal(t, "tui: chat controller is required", ErrMissingChatController.Error())
}
