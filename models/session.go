package models

import "time"

// Session represents a server-side authenticated session record.
//
// A session is created on successful login or registration and destroyed
// explicitly on logout. Its ID is the opaque value delivered to the client
// in an HTTP-only cookie; the record itself never leaves the server.
type Session struct {
	// ID is the opaque session identifier (UUIDv7).
	// Never expose in JSON; it is the identity carrier itself.
	ID string `json:"-"`

	// UserID is the account this session authenticates.
	UserID int64 `json:"user_id"`

	// CreatedAt is the timestamp when the session was established.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the timestamp after which the session is treated
	// as absent. Expired rows are swept lazily at lookup time.
	ExpiresAt time.Time `json:"expires_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
