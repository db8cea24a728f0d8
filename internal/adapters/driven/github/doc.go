// Package github provides a RepoSearcher backed by the GitHub repository
// search API.
//
// It lets IdeaLens search without its own backend. Requests are throttled to
// the search API quota and authenticated with an optional token, which raises
// the quota from 10 to 30 requests per minute.
package github
