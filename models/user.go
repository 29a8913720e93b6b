package models

import (
	"fmt"
	"time"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	// It is server-assigned, immutable, and not exposed via JSON.
	ID int64 `json:"-"`

	// Email is the unique login identifier of the user.
	// Stored and compared in lowercase.
	Email string `json:"email"`

	// FirstName is the user's given name.
	FirstName string `json:"first_name"`

	// LastName is the user's family name.
	LastName string `json:"last_name"`

	// Birthday is the user's date of birth, date precision only.
	Birthday time.Time `json:"birthday"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST never hold plaintext, never be serialized to
	// clients, and never be logged.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification of the account.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserName is the nested name object of a [UserResource].
type UserName struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Full  string `json:"full"`
}

// UserResource is the sanitized client-facing representation of a [User].
// It carries no credential data and is safe to embed in any API response.
type UserResource struct {
	Birthday  string    `json:"birthday"`
	Email     string    `json:"email"`
	Name      UserName  `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Resource converts the user into its client-facing [UserResource] shape.
// The birthday is rendered as an ISO date (yyyy-mm-dd) in UTC.
func (u User) Resource() UserResource {
	return UserResource{
		Birthday: u.Birthday.UTC().Format("2006-01-02"),
		Email:    u.Email,
		Name: UserName{
			First: u.FirstName,
			Last:  u.LastName,
			Full:  fmt.Sprintf("%s %s", u.FirstName, u.LastName),
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
