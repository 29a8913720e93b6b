package service

import (
	"context"

	"github.com/pxeeio/flex-api/models"
)

// AuthService implements the authentication flows: account registration,
// credential verification, session lifecycle, and per-request identity
// resolution.
//
// Domain failures are returned as *apperr.Error tagged variants; anything
// else is an infrastructure fault.
type AuthService interface {
	// Register validates the request (required fields, password confirm,
	// password policy), creates the account, and establishes a session.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Session, error)

	// Login verifies the credentials and establishes a session. Unknown
	// email and wrong password produce the identical failure.
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Session, error)

	// Logout destroys the session referenced by the signed cookie value.
	// It never fails for an invalid or absent carrier; logout is idempotent.
	Logout(ctx context.Context, cookieValue string) error

	// ResolveCookie maps a signed cookie value to a live user. Any failure
	// (bad signature, missing or expired session, deleted user) yields
	// ErrSessionInvalid, which callers treat as "anonymous", not as an error.
	ResolveCookie(ctx context.Context, cookieValue string) (models.User, error)

	// CookieValue renders the signed cookie payload for a session.
	CookieValue(session models.Session) string
}

// PasswordHasher provides one-way salted password hashing with a
// constant-time verify.
type PasswordHasher interface {
	// Hash derives the opaque storable form of plaintext. Failure here is
	// an unexpected fault, not a user error.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the stored hash. A mismatch
	// is a normal outcome and never an error.
	Verify(plaintext, hash string) bool
}
