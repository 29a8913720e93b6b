// Package http exposes the REST surface of the service.
//
// Every response, success or failure, is a JSON envelope with a "success"
// flag; failures add a message and, for validation problems, a map of
// per-field violation lists. The middleware chain assigns each request a
// trace id, logs it, and resolves the session cookie into an identity before
// any handler runs. Routes that need an authenticated caller opt in through
// the auth gate.
package http
