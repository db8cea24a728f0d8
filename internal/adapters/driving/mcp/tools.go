package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/idealens/internal/core/domain"
)

// SearchInput is the input schema for the search_ideas tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the project idea to find repositories for"`
}

// LoadMoreInput is the input schema for the load_more tool.
type LoadMoreInput struct{}

// SearchOutput is the output schema for search_ideas and load_more.
type SearchOutput struct {
	Query   string             `json:"query"`
	Results []RepositoryOutput `json:"results"`
	Count   int                `json:"count"`
	Added   int                `json:"added"`
	Page    int                `json:"page"`
	HasMore bool               `json:"has_more"`
}

// RepositoryOutput represents a single discovered repository.
type RepositoryOutput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Summary     string `json:"summary,omitempty"`
}

// ChatInput is the input schema for the chat tool.
type ChatInput struct {
	Message string `json:"message" jsonschema:"the message for the project-idea assistant"`
}

// ChatOutput is the output schema for the chat tool.
type ChatOutput struct {
	ID    string `json:"id"`
	Reply string `json:"reply"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_ideas",
		Description: "Find GitHub repositories related to a project idea, with a short summary of each",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_more",
		Description: "Fetch the next page of repositories for the last idea searched",
	}, s.handleLoadMore)

	if s.ports.Chat != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "chat",
			Description: "Ask the IdeaLens assistant about a project idea",
		}, s.handleChat)
	}
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if err := s.ports.Search.Submit(ctx, input.Query, domain.SubmitFresh); err != nil {
		return nil, SearchOutput{}, err
	}
	state := s.ports.Search.State()
	return nil, searchOutput(state, len(state.Results)), nil
}

func (s *Server) handleLoadMore(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ LoadMoreInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	before := s.ports.Search.State()
	if before.Query == "" {
		return nil, SearchOutput{}, ErrNoSearch
	}
	if !before.Cursor.HasMore {
		return nil, SearchOutput{}, ErrNoMoreResults
	}

	if err := s.ports.Search.Submit(ctx, before.Query, domain.SubmitLoadMore); err != nil {
		return nil, SearchOutput{}, err
	}

	after := s.ports.Search.State()
	added := len(after.Results) - len(before.Results)
	if added < 0 {
		added = 0
	}
	return nil, searchOutput(after, added), nil
}

func (s *Server) handleChat(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChatInput,
) (*mcp.CallToolResult, ChatOutput, error) {
	if s.ports.Chat == nil {
		return nil, ChatOutput{}, ErrChatUnavailable
	}

	reply, err := s.ports.Chat.Send(ctx, input.Message)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			return nil, ChatOutput{}, errors.New("message must not be empty")
		}
		return nil, ChatOutput{}, err
	}
	return nil, ChatOutput{ID: reply.ID, Reply: reply.Text}, nil
}

func searchOutput(state domain.SearchState, added int) SearchOutput {
	out := SearchOutput{
		Query:   state.Query,
		Results: make([]RepositoryOutput, len(state.Results)),
		Count:   len(state.Results),
		Added:   added,
		Page:    state.Cursor.Page,
		HasMore: state.Cursor.HasMore,
	}
	for i, r := range state.Results {
		out.Results[i] = RepositoryOutput{
			Name:        r.Name,
			Description: r.Description,
			URL:         r.URL,
			Summary:     r.Summary,
		}
	}
	return out
}

