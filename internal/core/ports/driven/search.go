package driven

import (
	"context"

	"github.com/custodia-labs/idealens/internal/core/domain"
)

// RepoSearcher finds repositories that match a free-text project idea.
// Implemented by the IdeaLens backend client and the GitHub search adapter.
type RepoSearcher interface {
	// SearchRepos returns one page of repositories in relevance order.
	// When the service answers with something that is not a list, the
	// returned error wraps domain.ErrMalformedResponse.
	SearchRepos(ctx context.Context, req domain.SearchRequest) ([]domain.Repository, error)
}
