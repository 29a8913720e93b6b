package models

// Envelope is the uniform JSON wrapper returned by every API response,
// success or failure.
//
// Success is always present. Errors carries a field→messages map and is
// present only on validation-class failures. DebugError and DebugStack
// expose the internal error name and stack trace and are populated only
// outside production deployments.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`

	DebugError string `json:"_error,omitempty"`
	DebugStack string `json:"_stack,omitempty"`
}
