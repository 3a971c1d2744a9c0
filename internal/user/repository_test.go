// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/contentai/internal/core"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewRepository(db), mock
}

func TestRepositoryGetByEmail(t *testing.T) {
	repo, mock := newMockRepository(t)

	id := uuid.New().String()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "is_admin",
		"created_at", "updated_at",
	}).AddRow(id, "u1", "u1@x.com", "hash", false, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("u1@x.com").
		WillReturnRows(rows)

	user, err := repo.GetByEmail(context.Background(), "u1@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "u1", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryUpdatePasswordMissingUser(t *testing.T) {
	repo, mock := newMockRepository(t)

	id := uuid.New().String()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(id, "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), id, "newhash")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositorySetAdmin(t *testing.T) {
	repo, mock := newMockRepository(t)

	id := uuid.New().String()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(id, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetAdmin(context.Background(), id, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListOrdersNewestFirst(t *testing.T) {
	repo, mock := newMockRepository(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "is_admin",
		"created_at", "updated_at",
	}).
		AddRow(uuid.New().String(), "new", "new@x.com", "h", false, now, now).
		AddRow(uuid.New().String(), "old", "old@x.com", "h", true,
			now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "new", users[0].Username)
	assert.Equal(t, "old", users[1].Username)
}
