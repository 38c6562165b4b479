package repository

import (
	"context"

	"github.com/subhaneetshrestha/lereddit/internal/domain/models"
)

// UserRepository persists and looks up user records.
type UserRepository interface {
	// Create inserts the user and fills in ID, CreatedAt and UpdatedAt.
	// A uniqueness conflict is reported as ErrUsernameExists or
	// ErrEmailExists.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	// FindByUsername and FindByEmail only match active records.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
