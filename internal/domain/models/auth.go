package models

// RegisterInput carries the raw registration fields as submitted.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// FieldError names the offending input field and a human-readable reason.
// Validation and conflict failures are returned as data, never as errors.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AuthResult is the outcome of register and login. Exactly one of Errors
// and User is set: a successful result carries the user and no errors, a
// failed one carries at least one error and no user.
type AuthResult struct {
	Errors []FieldError `json:"errors,omitempty"`
	User   *User        `json:"user,omitempty"`
}
