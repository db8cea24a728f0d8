package domain

// Repository is one discovered repository (a ResultItem).
// Summary is empty until enrichment completes, and stays empty when the
// summariser had nothing usable to say.
type Repository struct {
	// Name is the repository identity, usually "owner/name".
	Name string `json:"name"`

	// Description is the repository's own description text.
	Description string `json:"description"`

	// URL is the canonical link to the repository.
	URL string `json:"url"`

	// Summary is the AI-generated enrichment.
	Summary string `json:"summary,omitempty"`
}

// HasSummary reports whether enrichment produced a summary.
func (r Repository) HasSummary() bool {
	return r.Summary != ""
}

// WithSummary returns a copy of the repository carrying the given summary.
func (r Repository) WithSummary(summary string) Repository {
	r.Summary = summary
	return r
}
