package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddlebook/paddlebook/internal/core"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(
		sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "pgx"), mock
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("id-1", "alice", "hash", RoleUser).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	user := &User{
		ID:           "id-1",
		Username:     "alice",
		PasswordHash: "hash",
		Role:         RoleUser,
	}

	require.NoError(t, repo.Create(context.Background(), user))
	assert.WithinDuration(t, now, user.CreatedAt, time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("id-1", "alice", "hash", RoleUser).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &User{
		ID:           "id-1",
		Username:     "alice",
		PasswordHash: "hash",
		Role:         RoleUser,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDuplicateKey))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "username", "password_hash", "role", "created_at",
	}).AddRow("id-1", "alice", "hash", RoleAdmin, time.Now())

	mock.ExpectQuery(`SELECT id, username, password_hash, role, created_at`).
		WithArgs("alice").
		WillReturnRows(rows)

	user, err := repo.GetByUsername(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, "id-1", user.ID)
	assert.True(t, user.IsAdmin())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT id, username, password_hash, role, created_at`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "password_hash", "role", "created_at",
		}))

	_, err := repo.GetByUsername(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Count(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
