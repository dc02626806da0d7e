package comment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/paddlebook/paddlebook/internal/core"
)

type Repository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	ListByTarget(ctx context.Context, targetType, targetID string) ([]Comment, error)
	ListByAuthor(ctx context.Context, authorID string) ([]Comment, error)
	ListRecent(ctx context.Context, limit int) ([]Comment, error)
	UpdateContent(ctx context.Context, id, content string) (*Comment, error)
	SoftDelete(ctx context.Context, id string) error
	HardDeleteTree(ctx context.Context, id string) (int, error)
	GetVote(ctx context.Context, commentID, userID string) (string, error)
	UpsertVote(ctx context.Context, commentID, userID, voteType string) error
	DeleteVote(ctx context.Context, commentID, userID string) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// commentColumns joins vote tallies in so every read carries current
// counts without a second query.
const commentColumns = `
	c.id, c.content, c.author_id, c.author_name, c.target_type,
	c.target_id, c.parent_id, c.depth, c.status, c.created_at,
	c.updated_at,
	COUNT(v.user_id) FILTER (WHERE v.vote_type = 'upvote') AS upvotes,
	COUNT(v.user_id) FILTER (WHERE v.vote_type = 'downvote') AS downvotes`

const commentJoin = `
	FROM comments c
	LEFT JOIN comment_votes v ON v.comment_id = c.id`

const commentGroup = `
	GROUP BY c.id, c.content, c.author_id, c.author_name, c.target_type,
	         c.target_id, c.parent_id, c.depth, c.status, c.created_at,
	         c.updated_at`

func (r *repository) Create(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comments (
			id, content, author_id, author_name, target_type, target_id,
			parent_id, depth, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, comment, query,
		comment.ID,
		comment.Content,
		comment.AuthorID,
		comment.AuthorName,
		comment.TargetType,
		comment.TargetID,
		comment.ParentID,
		comment.Depth,
		comment.Status,
	)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

// GetByID returns the comment regardless of status; callers decide
// what a deleted row means for their operation.
func (r *repository) GetByID(ctx context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE c.id = $1
		%s`, commentColumns, commentJoin, commentGroup)

	var comment Comment
	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get comment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}

	return &comment, nil
}

// ListByTarget returns a target's active comments, oldest first so
// the tree builder sees parents before replies. Soft-deleted rows are
// excluded, which also hides their reply subtrees once the builder
// drops the resulting orphans.
func (r *repository) ListByTarget(
	ctx context.Context,
	targetType, targetID string,
) ([]Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE c.target_type = $1 AND c.target_id = $2 AND c.status = $3
		%s
		ORDER BY c.created_at ASC`, commentColumns, commentJoin, commentGroup)

	var comments []Comment
	err := r.db.SelectContext(
		ctx, &comments, query, targetType, targetID, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list comments by target: %w", err)
	}

	return comments, nil
}

func (r *repository) ListByAuthor(
	ctx context.Context,
	authorID string,
) ([]Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE c.author_id = $1 AND c.status = $2
		%s
		ORDER BY c.created_at DESC`, commentColumns, commentJoin, commentGroup)

	var comments []Comment
	err := r.db.SelectContext(ctx, &comments, query, authorID, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list comments by author: %w", err)
	}

	return comments, nil
}

func (r *repository) ListRecent(
	ctx context.Context,
	limit int,
) ([]Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE c.status = $1
		%s
		ORDER BY c.created_at DESC
		LIMIT $2`, commentColumns, commentJoin, commentGroup)

	var comments []Comment
	err := r.db.SelectContext(ctx, &comments, query, StatusActive, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent comments: %w", err)
	}

	return comments, nil
}

func (r *repository) UpdateContent(
	ctx context.Context,
	id, content string,
) (*Comment, error) {
	query := `
		UPDATE comments
		SET content = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, id, content, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("update comment: %w", core.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE comments
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, id, StatusDeleted, StatusActive)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete comment: %w", core.ErrNotFound)
	}

	return nil
}

// HardDeleteTree removes the comment and every descendant reply.
// Votes go with them via ON DELETE CASCADE. Returns the number of
// comments removed.
func (r *repository) HardDeleteTree(
	ctx context.Context,
	id string,
) (int, error) {
	query := `
		WITH RECURSIVE thread AS (
			SELECT id FROM comments WHERE id = $1
			UNION ALL
			SELECT c.id
			FROM comments c
			JOIN thread t ON c.parent_id = t.id
		)
		DELETE FROM comments
		WHERE id IN (SELECT id FROM thread)`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete comment tree: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete comment tree: %w", err)
	}
	if rows == 0 {
		return 0, fmt.Errorf("delete comment tree: %w", core.ErrNotFound)
	}

	return int(rows), nil
}

func (r *repository) GetVote(
	ctx context.Context,
	commentID, userID string,
) (string, error) {
	query := `
		SELECT vote_type
		FROM comment_votes
		WHERE comment_id = $1 AND user_id = $2`

	var voteType string
	err := r.db.GetContext(ctx, &voteType, query, commentID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get vote: %w", err)
	}

	return voteType, nil
}

func (r *repository) UpsertVote(
	ctx context.Context,
	commentID, userID, voteType string,
) error {
	query := `
		INSERT INTO comment_votes (comment_id, user_id, vote_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (comment_id, user_id)
		DO UPDATE SET vote_type = EXCLUDED.vote_type, updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query, commentID, userID, voteType)
	if err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}

	return nil
}

func (r *repository) DeleteVote(
	ctx context.Context,
	commentID, userID string,
) error {
	query := `
		DELETE FROM comment_votes
		WHERE comment_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, commentID, userID); err != nil {
		return fmt.Errorf("delete vote: %w", err)
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM comments WHERE status = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, StatusActive); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}

	return count, nil
}
