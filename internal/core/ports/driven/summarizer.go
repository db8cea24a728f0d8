package driven

import (
	"context"

	"github.com/custodia-labs/idealens/internal/core/domain"
)

// Summarizer produces a short AI-generated summary of a repository.
type Summarizer interface {
	// Summarize returns the summary for repo.
	// An empty string with a nil error means the service had no usable summary.
	Summarize(ctx context.Context, repo domain.Repository) (string, error)
}
