package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/subhaneetshrestha/lereddit/internal/domain/errors"
	"github.com/subhaneetshrestha/lereddit/internal/domain/models"
	"github.com/subhaneetshrestha/lereddit/internal/domain/repository"
)

// UserRepositoryPostgres implements repository.UserRepository on PostgreSQL.
type UserRepositoryPostgres struct {
	db DB
}

// NewUserRepositoryPostgres creates a new UserRepositoryPostgres.
func NewUserRepositoryPostgres(db DB) *UserRepositoryPostgres {
	return &UserRepositoryPostgres{db: db}
}

// Create persists a new user. Duplicate usernames and emails are resolved
// atomically by the unique constraints; no application-level check precedes
// the insert.
func (r *UserRepositoryPostgres) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, is_active, password, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	err := r.db.QueryRow(ctx, query,
		user.Username, user.IsActive, user.Password, user.Phone, user.Email,
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return domainErrors.ErrEmailExists
			}
			if strings.Contains(pgErr.ConstraintName, "username") {
				return domainErrors.ErrUsernameExists
			}
			return fmt.Errorf("create user, unique constraint %s: %w", pgErr.ConstraintName, domainErrors.ErrDuplicateValue)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by primary key, active or not.
func (r *UserRepositoryPostgres) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, created_at, updated_at, username, is_active, password, phone, email
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, id), "id")
}

// FindByUsername retrieves an active user by username. Callers pass the
// username already lowercased.
func (r *UserRepositoryPostgres) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, created_at, updated_at, username, is_active, password, phone, email
		FROM users
		WHERE username = $1 AND is_active
	`
	return r.scanUser(r.db.QueryRow(ctx, query, username), "username")
}

// FindByEmail retrieves an active user by email.
func (r *UserRepositoryPostgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, created_at, updated_at, username, is_active, password, phone, email
		FROM users
		WHERE email = $1 AND is_active
	`
	return r.scanUser(r.db.QueryRow(ctx, query, email), "email")
}

func (r *UserRepositoryPostgres) scanUser(row pgx.Row, by string) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Username,
		&user.IsActive, &user.Password, &user.Phone, &user.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by %s: %w", by, err)
	}
	return user, nil
}

var _ repository.UserRepository = (*UserRepositoryPostgres)(nil)
