package models

import (
	"regexp"
	"strings"
)

// Accepts local@domain.tld with optional single dot/hyphen separators and a
// 2-3 character TLD.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidateRegisterInput checks registration input shape before any side
// effect. It returns nil when the input is valid, otherwise a single
// FieldError for the first violated rule. Rules are evaluated in a fixed
// order: username length, username format, email format, password length.
func ValidateRegisterInput(input RegisterInput) []FieldError {
	if len(input.Username) <= 3 {
		return []FieldError{{
			Field:   "username",
			Message: "Length must be greater than 3",
		}}
	}

	if strings.Contains(input.Username, "@") {
		return []FieldError{{
			Field:   "username",
			Message: "Username cannot include @",
		}}
	}

	if !emailPattern.MatchString(input.Email) {
		return []FieldError{{
			Field:   "email",
			Message: "Invalid email",
		}}
	}

	if len(input.Password) <= 8 {
		return []FieldError{{
			Field:   "password",
			Message: "Length must be greater than 8",
		}}
	}

	return nil
}
