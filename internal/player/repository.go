package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/paddlebook/paddlebook/internal/core"
)

type Repository interface {
	Create(ctx context.Context, player *Player) error
	GetByID(ctx context.Context, id string) (*Player, error)
	Update(ctx context.Context, player *Player) error
	HardDelete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Player, error)
	ListByEquipment(
		ctx context.Context,
		paddleName, shape, thickness string,
	) ([]Player, error)
	UpdateEquipment(ctx context.Context, player *Player) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const playerColumns = `
	id, name, image, age, height, sponsor, shoes, paddle, paddle_brand,
	paddle_model, paddle_shape, paddle_thickness, paddle_handle_length,
	paddle_length, paddle_width, paddle_core, paddle_image, created_at,
	updated_at`

func (r *repository) Create(ctx context.Context, player *Player) error {
	query := `
		INSERT INTO players (
			id, name, image, age, height, sponsor, shoes, paddle,
			paddle_brand, paddle_model, paddle_shape, paddle_thickness,
			paddle_handle_length, paddle_length, paddle_width,
			paddle_core, paddle_image
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, player, query,
		player.ID,
		player.Name,
		player.Image,
		player.Age,
		player.Height,
		player.Sponsor,
		player.Shoes,
		player.Paddle,
		player.PaddleBrand,
		player.PaddleModel,
		player.PaddleShape,
		player.PaddleThickness,
		player.PaddleHandleLength,
		player.PaddleLength,
		player.PaddleWidth,
		player.PaddleCore,
		player.PaddleImage,
	)
	if err != nil {
		return fmt.Errorf("create player: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Player, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM players
		WHERE id = $1`, playerColumns)

	var player Player
	err := r.db.GetContext(ctx, &player, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get player: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}

	return &player, nil
}

func (r *repository) Update(ctx context.Context, player *Player) error {
	query := `
		UPDATE players
		SET name = $2, image = $3, age = $4, height = $5, sponsor = $6,
		    shoes = $7, paddle = $8, paddle_brand = $9,
		    paddle_model = $10, paddle_shape = $11,
		    paddle_thickness = $12, paddle_handle_length = $13,
		    paddle_length = $14, paddle_width = $15, paddle_core = $16,
		    paddle_image = $17, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &player.UpdatedAt, query,
		player.ID,
		player.Name,
		player.Image,
		player.Age,
		player.Height,
		player.Sponsor,
		player.Shoes,
		player.Paddle,
		player.PaddleBrand,
		player.PaddleModel,
		player.PaddleShape,
		player.PaddleThickness,
		player.PaddleHandleLength,
		player.PaddleLength,
		player.PaddleWidth,
		player.PaddleCore,
		player.PaddleImage,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update player: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}

	return nil
}

func (r *repository) HardDelete(ctx context.Context, id string) error {
	query := `DELETE FROM players WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete player: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Player, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM players`, playerColumns)

	var players []Player
	if err := r.db.SelectContext(ctx, &players, query); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}

// ListByEquipment finds players whose copied paddle values match the
// given template identity. Shape and thickness only constrain the
// match when the template had them filled in.
func (r *repository) ListByEquipment(
	ctx context.Context,
	paddleName, shape, thickness string,
) ([]Player, error) {
	conditions := "paddle = $1"
	args := []any{paddleName}

	if shape != "" {
		args = append(args, shape)
		conditions += fmt.Sprintf(" AND paddle_shape = $%d", len(args))
	}
	if thickness != "" {
		args = append(args, thickness)
		conditions += fmt.Sprintf(" AND paddle_thickness = $%d", len(args))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM players
		WHERE %s`, playerColumns, conditions)

	var players []Player
	if err := r.db.SelectContext(ctx, &players, query, args...); err != nil {
		return nil, fmt.Errorf("list players by equipment: %w", err)
	}

	return players, nil
}

func (r *repository) UpdateEquipment(
	ctx context.Context,
	player *Player,
) error {
	query := `
		UPDATE players
		SET paddle = $2, paddle_brand = $3, paddle_model = $4,
		    paddle_shape = $5, paddle_thickness = $6,
		    paddle_handle_length = $7, paddle_length = $8,
		    paddle_width = $9, paddle_core = $10, paddle_image = $11,
		    updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		player.ID,
		player.Paddle,
		player.PaddleBrand,
		player.PaddleModel,
		player.PaddleShape,
		player.PaddleThickness,
		player.PaddleHandleLength,
		player.PaddleLength,
		player.PaddleWidth,
		player.PaddleCore,
		player.PaddleImage,
	)
	if err != nil {
		return fmt.Errorf("update player equipment: %w", err)
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM players`

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}

	return count, nil
}
