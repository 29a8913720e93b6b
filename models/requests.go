package models

// LoginRequest is the body of POST /auth.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
//
// Password and PasswordConfirm must match; the comparison happens in the
// service layer before the password policy is evaluated.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`

	// Birthday is an ISO date string (yyyy-mm-dd).
	Birthday string `json:"birthday"`
}
