package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a search was submitted with an empty or
	// whitespace-only idea. The submission is ignored.
	ErrEmptyQuery = errors.New("empty query")

	// ErrEmptyMessage indicates a chat message was empty or whitespace-only.
	// The submission is ignored.
	ErrEmptyMessage = errors.New("empty message")

	// ErrSearchInProgress indicates a search or load-more is already running.
	ErrSearchInProgress = errors.New("search in progress")

	// ErrMalformedResponse indicates a collaborator answered with a value
	// that is not a usable result list. Search treats it as an empty page.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUnsupportedProvider indicates an unknown collaborator provider name.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Features requiring LLM (summaries, chat) cannot use the llm provider.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrBackendUnavailable indicates the IdeaLens backend did not answer.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
