package repository

import (
	"context"

	"github.com/subhaneetshrestha/lereddit/internal/domain/models"
)

// PostRepository persists and looks up posts.
type PostRepository interface {
	// Create inserts the post and fills in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	// UpdateTitle sets the title and refreshes UpdatedAt, returning the
	// updated post or ErrPostNotFound.
	UpdateTitle(ctx context.Context, id int64, title string) (*models.Post, error)
	// Delete removes the post. Deleting a missing post is not an error.
	Delete(ctx context.Context, id int64) error
}
