package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driven"
	"github.com/custodia-labs/idealens/internal/logger"
)

// Ensure Searcher implements the interface.
var _ driven.RepoSearcher = (*Searcher)(nil)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the GitHub searcher.
type Config struct {
	// Token is an optional personal access token.
	Token string

	// BaseURL overrides the API root, e.g. for GitHub Enterprise.
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Searcher finds repositories with the GitHub search API.
type Searcher struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewSearcher creates a GitHub searcher.
func NewSearcher(cfg Config) (*Searcher, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	var httpClient *http.Client
	quota := UnauthenticatedSearchRateLimit
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		quota = SearchRateLimit
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = cfg.Timeout

	client := gh.NewClient(httpClient)
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
		}
		client.BaseURL = u
	}

	return &Searcher{
		gh:          client,
		rateLimiter: NewRateLimiter(quota),
	}, nil
}

// SearchRepos runs a repository search ordered by best match.
func (s *Searcher) SearchRepos(ctx context.Context, req domain.SearchRequest) ([]domain.Repository, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	logger.Debug("GitHub search: q=%q page=%d per_page=%d", req.Query, req.Page, req.PageSize)

	result, resp, err := s.gh.Search.Repositories(ctx, req.Query, &gh.SearchOptions{
		ListOptions: gh.ListOptions{Page: req.Page, PerPage: req.PageSize},
	})
	s.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, s.wrapError(err, "search repositories")
	}
	if result == nil {
		return nil, fmt.Errorf("github: empty search result: %w", domain.ErrMalformedResponse)
	}

	logger.Debug("GitHub search: %d of %d total", len(result.Repositories), result.GetTotal())

	repos := make([]domain.Repository, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		if r == nil {
			continue
		}
		repos = append(repos, domain.Repository{
			Name:        r.GetFullName(),
			Description: r.GetDescription(),
			URL:         r.GetHTMLURL(),
		})
	}
	return repos, nil
}

// RateLimiter exposes the searcher's rate limiter.
func (s *Searcher) RateLimiter() *RateLimiter {
	return s.rateLimiter
}

func (s *Searcher) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	s.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (s *Searcher) wrapError(err error, operation string) error {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &RateLimitError{
			ResetAt:   time.Now().Add(abuseErr.GetRetryAfter()),
			Remaining: 0,
			Limit:     s.rateLimiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
