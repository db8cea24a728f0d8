package driving

import (
	"context"

	"github.com/custodia-labs/idealens/internal/core/domain"
)

// SearchController runs idea searches with pagination and result enrichment.
//
// A submission is split in two: Begin validates and marks the controller as
// loading without blocking, and the returned SearchRun performs the network
// work. Event loops call Begin on their own goroutine and Run on a worker.
type SearchController interface {
	// Begin accepts a submission. It returns domain.ErrEmptyQuery for a blank
	// query and domain.ErrSearchInProgress while another submission runs;
	// neither changes any state.
	Begin(query string, mode domain.SubmitMode) (SearchRun, error)

	// Submit is Begin followed by Run. Only Begin's errors are returned.
	Submit(ctx context.Context, query string, mode domain.SubmitMode) error

	// State returns a snapshot of the controller state.
	State() domain.SearchState

	// Results returns a copy of the current result set.
	Results() []domain.Repository

	// Cursor returns the pagination cursor.
	Cursor() domain.Cursor

	// Loading reports whether a submission is in flight.
	Loading() bool

	// Query returns the query of the most recent accepted submission.
	Query() string
}

// SearchRun is the network half of an accepted submission.
type SearchRun interface {
	// Run fetches, enriches and commits one page, then clears the loading
	// flag. Failures are absorbed into the controller state.
	Run(ctx context.Context)

	// Mode returns the submission mode.
	Mode() domain.SubmitMode

	// Page returns the page being fetched.
	Page() int
}
