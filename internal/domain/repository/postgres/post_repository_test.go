package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/subhaneetshrestha/lereddit/internal/domain/errors"
	"github.com/subhaneetshrestha/lereddit/internal/domain/models"
)

func postRows(rows ...[]any) *pgxmock.Rows {
	result := pgxmock.NewRows([]string{"id", "created_at", "updated_at", "title"})
	for _, row := range rows {
		result.AddRow(row...)
	}
	return result
}

func TestPostRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("first post", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	repo := NewPostRepositoryPostgres(mock)
	post := &models.Post{Title: "first post"}
	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, int64(1), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, created_at, updated_at, title\s+FROM posts`).
		WillReturnRows(postRows(
			[]any{int64(2), now, now, "second"},
			[]any{int64(1), now, now, "first"},
		))

	repo := NewPostRepositoryPostgres(mock)
	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Title)
}

func TestPostRepository_FindByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM posts\s+WHERE id =`).
		WithArgs(int64(9)).
		WillReturnRows(postRows())

	repo := NewPostRepositoryPostgres(mock)
	_, err = repo.FindByID(context.Background(), 9)
	assert.ErrorIs(t, err, domainErrors.ErrPostNotFound)
}

func TestPostRepository_UpdateTitle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE posts`).
		WithArgs("renamed", pgxmock.AnyArg(), int64(1)).
		WillReturnRows(postRows([]any{int64(1), now, now, "renamed"}))

	repo := NewPostRepositoryPostgres(mock)
	post, err := repo.UpdateTitle(context.Background(), 1, "renamed")
	require.NoError(t, err)
	assert.Equal(t, "renamed", post.Title)
}

func TestPostRepository_UpdateTitle_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`UPDATE posts`).
		WithArgs("renamed", pgxmock.AnyArg(), int64(9)).
		WillReturnRows(postRows())

	repo := NewPostRepositoryPostgres(mock)
	_, err = repo.UpdateTitle(context.Background(), 9, "renamed")
	assert.ErrorIs(t, err, domainErrors.ErrPostNotFound)
}

func TestPostRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM posts`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := NewPostRepositoryPostgres(mock)
	assert.NoError(t, repo.Delete(context.Background(), 1))
}

// Deleting an id that matches nothing still succeeds.
func TestPostRepository_Delete_NoRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM posts`).
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewPostRepositoryPostgres(mock)
	assert.NoError(t, repo.Delete(context.Background(), 9))
}

func TestPostRepository_Delete_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM posts`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection reset"))

	repo := NewPostRepositoryPostgres(mock)
	assert.Error(t, repo.Delete(context.Background(), 1))
}
