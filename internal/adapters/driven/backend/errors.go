package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidBaseURL indicates the configured backend URL cannot be used.
var ErrInvalidBaseURL = errors.New("backend: invalid base URL")

// StatusError represents a non-2xx answer from the backend.
type StatusError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend: %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("backend: %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsNotFound checks if the backend answered 404.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsServerError checks if the backend answered with a 5xx status.
func IsServerError(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	return false
}
