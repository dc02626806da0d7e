package comment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(
		sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "pgx"), mock
}

func commentRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "content", "author_id", "author_name", "target_type",
		"target_id", "parent_id", "depth", "status", "created_at",
		"updated_at", "upvotes", "downvotes",
	})
	for _, id := range ids {
		rows.AddRow(id, "content "+id, "author-1", "alice", TargetPaddle,
			"target-1", nil, 0, StatusActive, time.Now(), time.Now(), 0, 0)
	}
	return rows
}

func TestRepository_ListRecent_FetchesOnlyActiveRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT(?s:.*)FROM comments c(?s:.*)WHERE c\.status = \$1(?s:.*)LIMIT \$2`).
		WithArgs(StatusActive, 50).
		WillReturnRows(commentRows("c1", "c2"))

	comments, err := repo.ListRecent(context.Background(), 50)

	require.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByTarget_FetchesOnlyActiveRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT(?s:.*)FROM comments c(?s:.*)WHERE c\.target_type = \$1 AND c\.target_id = \$2 AND c\.status = \$3`).
		WithArgs(TargetPaddle, "target-1", StatusActive).
		WillReturnRows(commentRows("c1"))

	comments, err := repo.ListByTarget(
		context.Background(), TargetPaddle, "target-1")

	require.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
