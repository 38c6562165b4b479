package models

import (
	"time"
)

// User represents a registered account. The db tags are the authoritative
// column mapping for the users table; the GraphQL layer exposes its own
// field names and never exposes Password.
type User struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Username  string    `json:"username" db:"username"` // stored lowercase
	IsActive  bool      `json:"is_active" db:"is_active"`
	Password  string    `json:"-" db:"password"` // argon2id hash, never plaintext
	Phone     string    `json:"phone" db:"phone"`
	Email     string    `json:"email" db:"email"`
}
