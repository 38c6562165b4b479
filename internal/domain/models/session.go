package models

import (
	"time"
)

// Session is the server-side record behind the identity cookie. The ID is
// the opaque value carried by the cookie; the payload is just the user it
// authenticates.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
