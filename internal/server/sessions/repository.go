package sessions

import (
	"context"
)

type Repository interface {
	// Create inserts a new session. A primary-key collision is a storage
	// error, not retried; the 64-character random token makes one
	// practically impossible.
	Create(ctx context.Context, session *Session) error

	// Get returns the session with the given id or shared.ErrorNotFound.
	// Expired sessions are still returned; expiry is the service's concern.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes the session and reports whether it existed. A missing
	// session is not an error.
	Delete(ctx context.Context, id string) (bool, error)
}
