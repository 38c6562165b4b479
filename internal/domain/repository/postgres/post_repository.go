package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/subhaneetshrestha/lereddit/internal/domain/errors"
	"github.com/subhaneetshrestha/lereddit/internal/domain/models"
	"github.com/subhaneetshrestha/lereddit/internal/domain/repository"
)

// PostRepositoryPostgres implements repository.PostRepository on PostgreSQL.
type PostRepositoryPostgres struct {
	db DB
}

// NewPostRepositoryPostgres creates a new PostRepositoryPostgres.
func NewPostRepositoryPostgres(db DB) *PostRepositoryPostgres {
	return &PostRepositoryPostgres{db: db}
}

// Create persists a new post.
func (r *PostRepositoryPostgres) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	if err := r.db.QueryRow(ctx, query, post.Title, post.CreatedAt, post.UpdatedAt).Scan(&post.ID); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// FindByID retrieves a post by primary key.
func (r *PostRepositoryPostgres) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT id, created_at, updated_at, title
		FROM posts
		WHERE id = $1
	`
	post := &models.Post{}
	err := r.db.QueryRow(ctx, query, id).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt, &post.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return post, nil
}

// List retrieves all posts, newest first.
func (r *PostRepositoryPostgres) List(ctx context.Context) ([]*models.Post, error) {
	query := `
		SELECT id, created_at, updated_at, title
		FROM posts
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post := &models.Post{}
		if err := rows.Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt, &post.Title); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post rows: %w", err)
	}
	return posts, nil
}

// UpdateTitle sets the title and refreshes updated_at.
func (r *PostRepositoryPostgres) UpdateTitle(ctx context.Context, id int64, title string) (*models.Post, error) {
	query := `
		UPDATE posts
		SET title = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, created_at, updated_at, title
	`
	post := &models.Post{}
	err := r.db.QueryRow(ctx, query, title, time.Now(), id).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt, &post.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post title: %w", err)
	}
	return post, nil
}

// Delete removes a post. A delete matching no rows succeeds.
func (r *PostRepositoryPostgres) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

var _ repository.PostRepository = (*PostRepositoryPostgres)(nil)
