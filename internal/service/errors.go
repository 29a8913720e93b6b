package service

import "errors"

var (
	// ErrSessionInvalid is returned by ResolveCookie whenever a cookie
	// value cannot be mapped to a live user: bad signature, unknown or
	// expired session, or a user that no longer exists. Callers treat it
	// as "anonymous request", never as a server failure.
	ErrSessionInvalid = errors.New("session is invalid or expired")
)
