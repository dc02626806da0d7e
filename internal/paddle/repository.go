package paddle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/paddlebook/paddlebook/internal/core"
)

type Repository interface {
	Create(ctx context.Context, paddle *Paddle) error
	GetByID(ctx context.Context, id string) (*Paddle, error)
	Update(ctx context.Context, paddle *Paddle) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Paddle, error)
	Search(ctx context.Context, query string) ([]Paddle, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const paddleColumns = `
	id, name, brand, model, shape, thickness, handle_length, length,
	width, core, color, weight, image, description, price_link, status,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, paddle *Paddle) error {
	query := `
		INSERT INTO paddles (
			id, name, brand, model, shape, thickness, handle_length,
			length, width, core, color, weight, image, description,
			price_link, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, paddle, query,
		paddle.ID,
		paddle.Name,
		paddle.Brand,
		paddle.Model,
		paddle.Shape,
		paddle.Thickness,
		paddle.HandleLength,
		paddle.Length,
		paddle.Width,
		paddle.Core,
		paddle.Color,
		paddle.Weight,
		paddle.Image,
		paddle.Description,
		paddle.PriceLink,
		paddle.Status,
	)
	if err != nil {
		return fmt.Errorf("create paddle: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Paddle, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM paddles
		WHERE id = $1 AND status = $2`, paddleColumns)

	var paddle Paddle
	err := r.db.GetContext(ctx, &paddle, query, id, StatusActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get paddle: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get paddle: %w", err)
	}

	return &paddle, nil
}

func (r *repository) Update(ctx context.Context, paddle *Paddle) error {
	query := `
		UPDATE paddles
		SET name = $2, brand = $3, model = $4, shape = $5, thickness = $6,
		    handle_length = $7, length = $8, width = $9, core = $10,
		    color = $11, weight = $12, image = $13, description = $14,
		    price_link = $15, updated_at = NOW()
		WHERE id = $1 AND status = $16
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &paddle.UpdatedAt, query,
		paddle.ID,
		paddle.Name,
		paddle.Brand,
		paddle.Model,
		paddle.Shape,
		paddle.Thickness,
		paddle.HandleLength,
		paddle.Length,
		paddle.Width,
		paddle.Core,
		paddle.Color,
		paddle.Weight,
		paddle.Image,
		paddle.Description,
		paddle.PriceLink,
		StatusActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update paddle: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update paddle: %w", err)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE paddles
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, id, StatusDeleted, StatusActive)
	if err != nil {
		return fmt.Errorf("delete paddle: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete paddle: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete paddle: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Paddle, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM paddles
		WHERE status = $1
		ORDER BY brand ASC, model ASC`, paddleColumns)

	var paddles []Paddle
	if err := r.db.SelectContext(ctx, &paddles, query, StatusActive); err != nil {
		return nil, fmt.Errorf("list paddles: %w", err)
	}

	return paddles, nil
}

func (r *repository) Search(
	ctx context.Context,
	query string,
) ([]Paddle, error) {
	pattern := "%" + escapeLike(query) + "%"

	sqlQuery := fmt.Sprintf(`
		SELECT %s
		FROM paddles
		WHERE status = $1
			AND (name ILIKE $2 OR brand ILIKE $2 OR model ILIKE $2)
		ORDER BY brand ASC, model ASC`, paddleColumns)

	var paddles []Paddle
	err := r.db.SelectContext(ctx, &paddles, sqlQuery, StatusActive, pattern)
	if err != nil {
		return nil, fmt.Errorf("search paddles: %w", err)
	}

	return paddles, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM paddles WHERE status = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, StatusActive); err != nil {
		return 0, fmt.Errorf("count paddles: %w", err)
	}

	return count, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
