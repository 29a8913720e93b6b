// Package apperr defines the closed set of application failure kinds and the
// tagged error type that carries them from the domain layers to the HTTP
// boundary.
//
// Domain code returns an *Error instead of raising ad hoc errors; the single
// central handler in the HTTP layer switches over [Kind] to pick the status
// code and envelope shape. Anything that is not an *Error is treated as an
// unexpected fault.
package apperr

import (
	"errors"
	"fmt"
)

// Kind enumerates every failure class the API can surface to a client.
type Kind int

const (
	// KindValidation covers malformed or missing input, password policy
	// violations, and uniqueness conflicts surfaced as field errors.
	KindValidation Kind = iota

	// KindAuthenticationRequired is raised by the auth gate when a
	// protected route is hit without a resolved identity.
	KindAuthenticationRequired

	// KindInvalidCredentials is the single failure kind for login,
	// covering both unknown email and wrong password so the two cases
	// are indistinguishable to a client.
	KindInvalidCredentials

	// KindAccessDenied means the caller is authenticated but not
	// permitted to perform the operation.
	KindAccessDenied

	// KindNotFound means a lookup by id or key matched nothing.
	KindNotFound

	// KindUnexpected is anything uncaught. The client receives a generic
	// message; full detail stays server-side.
	KindUnexpected
)

// String returns the public error name associated with the kind. It is what
// clients see in the non-production _error debug field.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindAuthenticationRequired:
		return "AuthenticationError"
	case KindInvalidCredentials:
		return "UserLoginError"
	case KindAccessDenied:
		return "AccessDeniedError"
	case KindNotFound:
		return "ModelNotFoundError"
	case KindUnexpected:
		return "UnexpectedServerError"
	}
	return "UnknownError"
}

// Error is the tagged failure variant returned by domain functions.
type Error struct {
	// Kind selects the HTTP mapping at the boundary.
	Kind Kind

	// Message is the human-readable, client-safe description.
	Message string

	// Fields maps input field names to their violation messages.
	// Populated only for KindValidation.
	Fields map[string][]string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As matching.
func (e *Error) Unwrap() error {
	return e.cause
}

// Validation builds a field-scoped validation failure.
// When message is empty the default "The given <field> is invalid." is used.
func Validation(field string, violations []string, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("The given %s is invalid.", field)
	}
	return &Error{
		Kind:    KindValidation,
		Message: message,
		Fields:  map[string][]string{field: violations},
	}
}

// ValidationFields builds a validation failure spanning several fields at
// once, e.g. a registration request with multiple missing inputs.
func ValidationFields(fields map[string][]string, message string) *Error {
	if message == "" {
		message = "The given data is invalid."
	}
	return &Error{
		Kind:    KindValidation,
		Message: message,
		Fields:  fields,
	}
}

// AuthenticationRequired is returned by the auth gate for anonymous access
// to a protected route.
func AuthenticationRequired() *Error {
	return &Error{
		Kind:    KindAuthenticationRequired,
		Message: "Not authenticated.",
	}
}

// InvalidCredentials is returned for every failed login attempt.
// Unknown email and wrong password deliberately produce the same value.
func InvalidCredentials() *Error {
	return &Error{
		Kind:    KindInvalidCredentials,
		Message: "Invalid credentials.",
	}
}

// AccessDenied is returned when an authenticated caller lacks permission.
func AccessDenied() *Error {
	return &Error{
		Kind:    KindAccessDenied,
		Message: "Forbidden.",
	}
}

// NotFound is returned when a lookup by key matched no record.
func NotFound(model, key string, value any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with (%s, %v) does not exist.", model, key, value),
	}
}

// Unexpected wraps an uncaught fault. The client-facing message is generic;
// err is retained as the cause for server-side logging and non-production
// debug output.
func Unexpected(err error) *Error {
	return &Error{
		Kind:    KindUnexpected,
		Message: "An unknown error occurred.",
		cause:   err,
	}
}

// From normalises any error into an *Error. Existing *Error values pass
// through untouched; everything else becomes KindUnexpected.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Unexpected(err)
}
