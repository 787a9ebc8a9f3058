// Package session provides the interface for session persistence
package session

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionmock github.com/onekill0503/dnd-bot/internal/repositories/session Repository

import (
	"context"
	"time"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
)

// DefaultTTL is how long an untouched session snapshot survives
const DefaultTTL = time.Hour

// Repository defines the interface for session persistence.
// Sessions are addressed by their canonical id only; callers resolve
// voice channel ids with game.ResolveSessionID first.
type Repository interface {
	// Get retrieves a session by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.SessionNotFound if the session doesn't exist or expired
	// Returns errors.PersistenceFailed for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save creates or replaces a session snapshot and refreshes its TTL
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.PersistenceFailed for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes a session; deleting a missing session is not an error
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.PersistenceFailed for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Touch restarts the expiration window of a stored session
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.SessionNotFound if the session doesn't exist or expired
	// Returns errors.PersistenceFailed for storage failures
	Touch(ctx context.Context, input TouchInput) (*TouchOutput, error)

	// List returns every stored session
	// Returns errors.PersistenceFailed for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// GetInput defines the input for getting a session
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a session
type GetOutput struct {
	Session *game.Session
}

// SaveInput defines the input for saving a session
type SaveInput struct {
	Session *game.Session
}

// SaveOutput defines the output for saving a session
type SaveOutput struct{}

// DeleteInput defines the input for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a session
type DeleteOutput struct{}

// TouchInput defines the input for refreshing a session's TTL
type TouchInput struct {
	ID string
}

// TouchOutput defines the output for refreshing a session's TTL
type TouchOutput struct{}

// ListInput defines the input for listing sessions
type ListInput struct{}

// ListOutput defines the output for listing sessions
type ListOutput struct {
	Sessions []*game.Session
}
