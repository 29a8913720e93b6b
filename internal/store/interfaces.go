package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/pxeeio/flex-api/models"
)

// UserRepository is the minimal credential-store contract the rest of the
// application depends on. Exactly one concrete backend (PostgreSQL) exists.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields populated. Returns ErrEmailAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks an account up by its lowercased email.
	// Returns ErrUserNotFound when no record matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks an account up by its primary key.
	// Returns ErrUserNotFound when no record matches.
	FindUserByID(ctx context.Context, id int64) (models.User, error)

	// SaveUser updates the mutable profile fields of an existing account
	// and returns the stored representation.
	SaveUser(ctx context.Context, user models.User) (models.User, error)
}

// SessionRepository manages server-side session records. Garbage collection
// of expired rows happens store-side via DeleteExpiredSessions; the
// application never mutates a session in place.
type SessionRepository interface {
	// CreateSession persists a new session record.
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)

	// FindSessionByID retrieves a live session by its opaque id.
	// Missing and expired sessions both yield ErrSessionNotFound.
	FindSessionByID(ctx context.Context, sid string) (models.Session, error)

	// DeleteSession removes a session record. Deleting a session that does
	// not exist is not an error.
	DeleteSession(ctx context.Context, sid string) error

	// DeleteExpiredSessions sweeps rows whose expiry is at or before now
	// and reports how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// ErrorClassificator reports whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
