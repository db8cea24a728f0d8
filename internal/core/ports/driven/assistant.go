package driven

import "context"

// Assistant answers a single chat message.
// Each call is independent; the assistant keeps no conversation state.
type Assistant interface {
	// Reply returns the assistant's answer to message.
	// An empty string with a nil error means the reply was unusable.
	Reply(ctx context.Context, message string) (string, error)
}

// HealthChecker verifies a remote collaborator is reachable.
type HealthChecker interface {
	// Ping makes a lightweight request and returns an error if it fails.
	Ping(ctx context.Context) error
}
