package repository

import (
	"context"

	"github.com/subhaneetshrestha/lereddit/internal/domain/models"
)

// SessionStore holds sessions keyed by their opaque id. Entries live until
// explicitly destroyed or until the store's TTL elapses.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	// Get returns ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*models.Session, error)
	Destroy(ctx context.Context, id string) error
}
