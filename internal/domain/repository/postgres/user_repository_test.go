package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/subhaneetshrestha/lereddit/internal/domain/errors"
	"github.com/subhaneetshrestha/lereddit/internal/domain/models"
)

func newUser() *models.User {
	return &models.User{
		Username: "alice123",
		IsActive: true,
		Password: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		Phone:    "555",
		Email:    "a@b.com",
	}
}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice123", true, newUser().Password, "555", "a@b.com", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	repo := NewUserRepositoryPostgres(mock)
	user := newUser()
	require.NoError(t, repo.Create(context.Background(), user))

	assert.Equal(t, int64(7), user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UniqueViolations(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantErr    error
	}{
		{"username conflict", "users_username_key", domainErrors.ErrUsernameExists},
		{"email conflict", "users_email_key", domainErrors.ErrEmailExists},
		{"unnamed conflict", "users_other_key", domainErrors.ErrDuplicateValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery(`INSERT INTO users`).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
					pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{
					Code:           pgerrcode.UniqueViolation,
					ConstraintName: tt.constraint,
				})

			repo := NewUserRepositoryPostgres(mock)
			err = repo.Create(context.Background(), newUser())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserRepository_Create_OtherError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(errors.New("connection refused"))

	repo := NewUserRepositoryPostgres(mock)
	err = repo.Create(context.Background(), newUser())
	require.Error(t, err)
	assert.False(t, domainErrors.IsConflict(err))
}

func userRows(id int64) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "created_at", "updated_at", "username", "is_active", "password", "phone", "email"}).
		AddRow(id, now, now, "alice123", true, "hash", "555", "a@b.com")
}

func TestUserRepository_FindByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, created_at, updated_at, username, is_active, password, phone, email\s+FROM users\s+WHERE id =`).
		WithArgs(int64(7)).
		WillReturnRows(userRows(7))

	repo := NewUserRepositoryPostgres(mock)
	user, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "alice123", user.Username)
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM users\s+WHERE username =`).
		WithArgs("nobody").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at", "username", "is_active", "password", "phone", "email"}))

	repo := NewUserRepositoryPostgres(mock)
	_, err = repo.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, domainErrors.ErrUserNotFound)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM users\s+WHERE email =`).
		WithArgs("a@b.com").
		WillReturnRows(userRows(7))

	repo := NewUserRepositoryPostgres(mock)
	user, err := repo.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
}
