package domain

// PageSize is the fixed number of repositories requested per page.
const PageSize = 6

// FirstPage is the page a fresh search starts from.
const FirstPage = 1

// SubmitMode selects how a search submission treats the existing results.
type SubmitMode string

// Available submit modes.
const (
	// SubmitFresh replaces the result set with page 1 of a new search.
	SubmitFresh SubmitMode = "fresh"

	// SubmitLoadMore appends the next page to the existing result set.
	SubmitLoadMore SubmitMode = "load_more"
)

// IsValid returns true if the submit mode is recognised.
func (m SubmitMode) IsValid() bool {
	return m == SubmitFresh || m == SubmitLoadMore
}

// String returns the string representation.
func (m SubmitMode) String() string {
	return string(m)
}

// SearchRequest is what the search collaborator receives.
type SearchRequest struct {
	// Query is the free-text idea.
	Query string

	// Page is the 1-based page number.
	Page int

	// PageSize is the number of repositories per page.
	PageSize int
}

// Cursor tracks pagination.
//
// HasMore is a heuristic: it is true whenever the last page had at least one
// item, because the search service reports no total count.
type Cursor struct {
	// Page is the last page successfully fetched.
	Page int `json:"page"`

	// HasMore reports whether another page is worth requesting.
	HasMore bool `json:"has_more"`
}

// InitialCursor returns the cursor before any search has run.
func InitialCursor() Cursor {
	return Cursor{Page: FirstPage}
}

// Next returns the page a load-more submission should request.
func (c Cursor) Next() int {
	return c.Page + 1
}

// SearchState is a snapshot of the search controller's view state.
type SearchState struct {
	// Query is the idea of the most recent accepted submission.
	Query string

	// Results is the ordered result set.
	Results []Repository

	// Cursor is the pagination cursor.
	Cursor Cursor

	// Loading is true while a submission is in flight.
	Loading bool
}

// CanLoadMore reports whether a load-more submission makes sense now.
func (s SearchState) CanLoadMore() bool {
	return s.Cursor.HasMore && !s.Loading && s.Query != ""
}

// EnrichPolicy decides what one failed summary call does to a page.
type EnrichPolicy string

// Available enrichment policies.
const (
	// EnrichBestEffort leaves a failed item's summary empty and keeps the page.
	EnrichBestEffort EnrichPolicy = "best_effort"

	// EnrichAllOrNothing fails the whole page when any summary call fails.
	EnrichAllOrNothing EnrichPolicy = "all_or_nothing"
)

// IsValid returns true if the policy is recognised.
func (p EnrichPolicy) IsValid() bool {
	return p == EnrichBestEffort || p == EnrichAllOrNothing
}

// String returns the string representation.
func (p EnrichPolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p EnrichPolicy) Description() string {
	switch p {
	case EnrichBestEffort:
		return "Best effort (failed summaries are left empty)"
	case EnrichAllOrNothing:
		return "All or nothing (one failed summary discards the page)"
	default:
		return unknownDescription
	}
}
