package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "idealens://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "results",
		Name:        "results",
		Description: "Repositories found so far for the current idea",
		MIMEType:    "application/json",
	}, s.handleResultsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "results/{index}",
		Name:        "result",
		Description: "One repository from the current results, by 1-based position",
		MIMEType:    "application/json",
	}, s.handleResultResource)

	if s.ports.Chat != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "transcript",
			Name:        "transcript",
			Description: "The assistant conversation so far",
			MIMEType:    "application/json",
		}, s.handleTranscriptResource)
	}
}

func (s *Server) handleResultsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, searchOutput(s.ports.Search.State(), 0))
}

func (s *Server) handleResultResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	index := extractResultIndex(req.Params.URI)
	results := s.ports.Search.Results()
	if index < 1 || index > len(results) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	r := results[index-1]
	return jsonResource(req.Params.URI, RepositoryOutput{
		Name:        r.Name,
		Description: r.Description,
		URL:         r.URL,
		Summary:     r.Summary,
	})
}

func (s *Server) handleTranscriptResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Chat == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, s.ports.Chat.Transcript())
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractResultIndex extracts N from idealens://results/N, or 0 when absent.
func extractResultIndex(uri string) int {
	const prefix = uriScheme + "results/"

	if !strings.HasPrefix(uri, prefix) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return 0
	}
	return n
}
