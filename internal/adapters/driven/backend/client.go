// Package backend provides the IdeaLens backend client.
//
// The backend exposes three endpoints used by the controllers:
//
//	GET  /search?q=<idea>&page=<n>&per_page=<size>  -> [{name, description, url}, ...]
//	POST /summarize  {name, description, url}        -> {summary}
//	POST /chat       {message}                       -> {reply}
//
// and a root greeting at GET / used for health checks.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driven"
	"github.com/custodia-labs/idealens/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.RepoSearcher  = (*Client)(nil)
	_ driven.Summarizer    = (*Client)(nil)
	_ driven.Assistant     = (*Client)(nil)
	_ driven.HealthChecker = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultBaseURL = domain.DefaultBackendURL
	DefaultTimeout = domain.DefaultBackendTimeout * time.Second

	// maxErrorBody bounds how much of an error body is kept in StatusError.
	maxErrorBody = 512
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend root (default: http://127.0.0.1:8000).
	BaseURL string

	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration

	// HTTPClient overrides the HTTP client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the IdeaLens backend.
type Client struct {
	client  *http.Client
	baseURL string
}

// searchItem is one element of the /search response.
// full_name and html_url are accepted for backends that pass GitHub
// records through unchanged.
type searchItem struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	HTMLURL     string `json:"html_url"`
}

// summarizeRequest is the /summarize request body.
type summarizeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// chatRequest is the /chat request body.
type chatRequest struct {
	Message string `json:"message"`
}

// NewClient creates a backend client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// BaseURL returns the backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchRepos fetches one page of repositories for an idea.
func (c *Client) SearchRepos(ctx context.Context, req domain.SearchRequest) ([]domain.Repository, error) {
	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("per_page", strconv.Itoa(req.PageSize))

	logger.Debug("GET %s/search?%s", c.baseURL, q.Encode())

	body, err := c.do(ctx, http.MethodGet, "/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	return decodeSearch(body)
}

// Summarize asks the backend for a summary of one repository.
// A missing or non-string summary field yields an empty summary.
func (c *Client) Summarize(ctx context.Context, repo domain.Repository) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/summarize", summarizeRequest{
		Name:        repo.Name,
		Description: repo.Description,
		URL:         repo.URL,
	})
	if err != nil {
		return "", err
	}
	return decodeStringField(body, "summary")
}

// Reply sends one chat message to the backend assistant.
// A missing or non-string reply field yields an empty reply.
func (c *Client) Reply(ctx context.Context, message string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/chat", chatRequest{Message: message})
	if err != nil {
		return "", err
	}
	return decodeStringField(body, "reply")
}

// Ping checks the backend root answers.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodGet, "/", nil); err != nil {
		return fmt.Errorf("backend: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (c *Client) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// do sends a request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		endpoint := path
		if i := strings.IndexByte(endpoint, '?'); i >= 0 {
			endpoint = endpoint[:i]
		}
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       truncate(strings.TrimSpace(string(body)), maxErrorBody),
		}
	}

	return body, nil
}

// decodeSearch parses a /search body. Valid JSON that is not a list of
// repository objects is reported as domain.ErrMalformedResponse; a body that
// is not JSON at all is a plain decode error.
func decodeSearch(body []byte) ([]domain.Repository, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("decode search response: invalid JSON")
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("search response is not a list: %w", domain.ErrMalformedResponse)
	}

	var items []searchItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("search response items: %w: %v", domain.ErrMalformedResponse, err)
	}

	repos := make([]domain.Repository, len(items))
	for i, item := range items {
		repos[i] = item.toDomain()
	}
	return repos, nil
}

func (item searchItem) toDomain() domain.Repository {
	repo := domain.Repository{
		Name:        item.Name,
		Description: item.Description,
		URL:         item.URL,
	}
	if repo.Name == "" {
		repo.Name = item.FullName
	}
	if repo.URL == "" {
		repo.URL = item.HTMLURL
	}
	return repo
}

// decodeStringField reads one string field from a JSON body.
// The body must be JSON; anything other than a string field yields "".
func decodeStringField(body []byte, field string) (string, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode %s response: %w", field, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return "", nil
	}
	s, _ := obj[field].(string)
	return s, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
