package sessions

import "time"

const (
	// TokenLength is the length of generated session identifiers.
	TokenLength = 64

	// Validity is the fixed session lifetime. The expiry is set once at
	// creation and never extended.
	Validity = 30 * 24 * time.Hour
)

// Session is a bearer credential row. Expiry is an absolute timestamp in
// epoch seconds; the session is valid while now < Expiry. Rows are only ever
// inserted and deleted, never updated.
type Session struct {
	ID     string
	UserID string
	Expiry int64
}

// IsExpiredAt reports whether the session is expired at the given time.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return t.Unix() >= s.Expiry
}
