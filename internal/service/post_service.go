package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	domainErrors "github.com/subhaneetshrestha/lereddit/internal/domain/errors"
	"github.com/subhaneetshrestha/lereddit/internal/domain/models"
	"github.com/subhaneetshrestha/lereddit/internal/domain/repository"
)

// PostService is plain CRUD over the post repository.
type PostService struct {
	posts  repository.PostRepository
	logger *zap.Logger
}

// NewPostService creates a new PostService.
func NewPostService(posts repository.PostRepository, logger *zap.Logger) *PostService {
	return &PostService{posts: posts, logger: logger}
}

// List returns all posts.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.posts.List(ctx)
}

// Get returns a post by id, or nil when it does not exist.
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPostNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

// Create persists a new post with the given title.
func (s *PostService) Create(ctx context.Context, title string) (*models.Post, error) {
	post := &models.Post{Title: title}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// UpdateTitle changes a post's title, returning nil when the post does not
// exist.
func (s *PostService) UpdateTitle(ctx context.Context, id int64, title string) (*models.Post, error) {
	post, err := s.posts.UpdateTitle(ctx, id, title)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPostNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes a post. It reports false when the delete fails; deleting
// a missing post still reports true.
func (s *PostService) Delete(ctx context.Context, id int64) bool {
	if err := s.posts.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete post", zap.Error(err), zap.Int64("post_id", id))
		return false
	}
	return true
}
