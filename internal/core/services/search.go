package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/idealens/internal/core/domain"
	"github.com/custodia-labs/idealens/internal/core/ports/driven"
	"github.com/custodia-labs/idealens/internal/core/ports/driving"
	"github.com/custodia-labs/idealens/internal/logger"
)

// Ensure SearchController implements the interface.
var _ driving.SearchController = (*SearchController)(nil)

// SearchController searches for repositories matching a project idea,
// pages through them and enriches every page with summaries.
type SearchController struct {
	searcher   driven.RepoSearcher
	summarizer driven.Summarizer
	policy     domain.EnrichPolicy
	pageSize   int

	mu      sync.Mutex
	query   string
	results []domain.Repository
	cursor  domain.Cursor
	loading bool
}

// NewSearchController creates a search controller.
// The summarizer is optional; without it results are committed unenriched.
// An invalid policy falls back to best effort.
func NewSearchController(
	searcher driven.RepoSearcher,
	summarizer driven.Summarizer,
	policy domain.EnrichPolicy,
) *SearchController {
	if !policy.IsValid() {
		policy = domain.EnrichBestEffort
	}
	return &SearchController{
		searcher:   searcher,
		summarizer: summarizer,
		policy:     policy,
		pageSize:   domain.PageSize,
		cursor:     domain.InitialCursor(),
	}
}

// Policy returns the enrichment policy.
func (c *SearchController) Policy() domain.EnrichPolicy {
	return c.policy
}

// Begin accepts a submission and marks the controller as loading.
func (c *SearchController) Begin(query string, mode domain.SubmitMode) (driving.SearchRun, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: submit mode %q", domain.ErrInvalidInput, mode)
	}
	if strings.TrimSpace(query) == "" {
		logger.Debug("Ignoring empty query")
		return nil, domain.ErrEmptyQuery
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		logger.Debug("Ignoring %s submission for %q: search in progress", mode, query)
		return nil, domain.ErrSearchInProgress
	}

	page := domain.FirstPage
	if mode == domain.SubmitLoadMore {
		page = c.cursor.Next()
	}

	c.loading = true
	c.query = query

	logger.Debug("Accepted %s submission: query=%q page=%d", mode, query, page)

	return &searchRun{
		controller: c,
		query:      query,
		mode:       mode,
		page:       page,
	}, nil
}

// Submit accepts a submission and runs it to completion.
func (c *SearchController) Submit(ctx context.Context, query string, mode domain.SubmitMode) error {
	run, err := c.Begin(query, mode)
	if err != nil {
		return err
	}
	run.Run(ctx)
	return nil
}

// State returns a snapshot of the controller state.
func (c *SearchController) State() domain.SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.SearchState{
		Query:   c.query,
		Results: cloneRepos(c.results),
		Cursor:  c.cursor,
		Loading: c.loading,
	}
}

// Results returns a copy of the current result set.
func (c *SearchController) Results() []domain.Repository {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneRepos(c.results)
}

// Cursor returns the pagination cursor.
func (c *SearchController) Cursor() domain.Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Loading reports whether a submission is in flight.
func (c *SearchController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Query returns the query of the most recent accepted submission.
func (c *SearchController) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// enrich summarises every repository in parallel and waits for all calls to
// settle. Results keep the input order.
func (c *SearchController) enrich(ctx context.Context, repos []domain.Repository) ([]domain.Repository, error) {
	enriched := make([]domain.Repository, len(repos))
	if c.summarizer == nil {
		copy(enriched, repos)
		return enriched, nil
	}

	// Not errgroup.WithContext: a failed summary must not cancel its siblings.
	var g errgroup.Group
	for i, repo := range repos {
		g.Go(func() error {
			summary, err := c.summarizer.Summarize(ctx, repo)
			if err != nil {
				if c.policy == domain.EnrichAllOrNothing {
					return fmt.Errorf("summarize %s: %w", repo.Name, err)
				}
				logger.Warn("Summary for %s failed, leaving it empty: %v", repo.Name, err)
				enriched[i] = repo.WithSummary("")
				return nil
			}
			enriched[i] = repo.WithSummary(summary)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

// commit applies a fetched and enriched page.
func (c *SearchController) commit(r *searchRun, page []domain.Repository) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.loading = false }()

	if r.mode == domain.SubmitFresh {
		c.results = page
	} else {
		c.results = append(c.results, page...)
	}

	// The service reports no total, so any non-empty page may have a successor.
	hasMore := len(page) > 0
	if hasMore || r.mode == domain.SubmitFresh {
		c.cursor.Page = r.page
	}
	c.cursor.HasMore = hasMore

	logger.Debug("Committed %d repositories (total %d), cursor page=%d has_more=%t",
		len(page), len(c.results), c.cursor.Page, c.cursor.HasMore)
}

// commitMalformed handles a response that was not a result list.
// Results are cleared in both modes; the cursor page is kept.
func (c *SearchController) commitMalformed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.loading = false }()

	c.results = nil
	c.cursor.HasMore = false
}

// commitFailure handles a transport or enrichment failure.
// Results are cleared in both modes; the cursor page is kept.
func (c *SearchController) commitFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.loading = false }()

	c.results = nil
	c.cursor.HasMore = false
}

// searchRun is the network half of an accepted submission.
type searchRun struct {
	controller *SearchController
	query      string
	mode       domain.SubmitMode
	page       int
}

// Run fetches, enriches and commits one page.
func (r *searchRun) Run(ctx context.Context) {
	c := r.controller

	logger.Section("Search")
	logger.Debug("Query: %q, mode: %s, page: %d", r.query, r.mode, r.page)

	repos, err := c.searcher.SearchRepos(ctx, domain.SearchRequest{
		Query:    r.query,
		Page:     r.page,
		PageSize: c.pageSize,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMalformedResponse) {
			logger.Warn("Search returned a malformed response: %v", err)
			c.commitMalformed()
			return
		}
		logger.Warn("Search failed: %v", err)
		c.commitFailure()
		return
	}
	logger.Debug("Fetched %d repositories", len(repos))

	enriched, err := c.enrich(ctx, repos)
	if err != nil {
		logger.Warn("Enrichment failed, discarding page: %v", err)
		c.commitFailure()
		return
	}

	c.commit(r, enriched)
}

// Mode returns the submission mode.
func (r *searchRun) Mode() domain.SubmitMode {
	return r.mode
}

// Page returns the page being fetched.
func (r *searchRun) Page() int {
	return r.page
}

func cloneRepos(repos []domain.Repository) []domain.Repository {
	if repos == nil {
		return nil
	}
	out := make([]domain.Repository, len(repos))
	copy(out, repos)
	return out
}
