package paddle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/paddlebook/paddlebook/internal/core"
)

type Service struct {
	repo    Repository
	players PlayerSync
	logger  *slog.Logger
}

func NewService(repo Repository, players PlayerSync, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		players: players,
		logger:  logger,
	}
}

func (s *Service) List(ctx context.Context) ([]PaddleResponse, error) {
	paddles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToPaddleResponseList(paddles), nil
}

func (s *Service) Search(ctx context.Context, query string) ([]PaddleResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}

	paddles, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return ToPaddleResponseList(paddles), nil
}

func (s *Service) Get(ctx context.Context, id string) (*PaddleResponse, error) {
	if err := core.ValidateID(id); err != nil {
		return nil, err
	}

	paddle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToPaddleResponse(paddle)
	return &resp, nil
}

func (s *Service) Create(
	ctx context.Context,
	req CreatePaddleRequest,
) (*PaddleResponse, error) {
	paddle := &Paddle{
		ID:           core.NewID(),
		Name:         strings.TrimSpace(req.Name),
		Brand:        strings.TrimSpace(req.Brand),
		Model:        req.Model,
		Shape:        req.Shape,
		Thickness:    req.Thickness,
		HandleLength: req.HandleLength,
		Length:       req.Length,
		Width:        req.Width,
		Core:         req.Core,
		Color:        req.Color,
		Weight:       req.Weight,
		Image:        req.Image,
		Description:  req.Description,
		PriceLink:    req.PriceLink,
		Status:       StatusActive,
	}

	if err := s.repo.Create(ctx, paddle); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "paddle created",
		slog.String("paddle_id", paddle.ID),
		slog.String("name", paddle.Name),
	)

	resp := ToPaddleResponse(paddle)
	return &resp, nil
}

// Update edits the template and then pushes the change out to every
// player currently using it. Players are matched against the paddle's
// values as they were BEFORE this edit, since their records hold the
// old copies.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdatePaddleRequest,
) (*UpdatePaddleResult, error) {
	if err := core.ValidateID(id); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldName := current.Name
	oldShape := current.Shape
	oldThickness := current.Thickness

	applyUpdate(current, req)

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}

	affected, err := s.propagate(ctx, oldName, oldShape, oldThickness, req)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "paddle updated",
		slog.String("paddle_id", current.ID),
		slog.Int("affected_players", affected),
	)

	return &UpdatePaddleResult{
		Paddle:          ToPaddleResponse(current),
		AffectedPlayers: affected,
	}, nil
}

// propagate rewrites the equipment of every player whose copied values
// still match the pre-update paddle. Writes run one player at a time;
// a failure mid-way leaves earlier players updated, which the caller
// surfaces as an error so the edit can be retried (the merge is
// idempotent).
func (s *Service) propagate(
	ctx context.Context,
	oldName, oldShape, oldThickness string,
	req UpdatePaddleRequest,
) (int, error) {
	matches, err := s.players.ListByEquipment(ctx, oldName, oldShape, oldThickness)
	if err != nil {
		return 0, fmt.Errorf("list players by equipment: %w", err)
	}

	affected := 0
	for _, match := range matches {
		merged := mergeEquipment(match.Equipment, req)
		if err := s.players.UpdateEquipment(ctx, match.PlayerID, merged); err != nil {
			return affected, fmt.Errorf(
				"sync player %s: %w", match.PlayerID, err)
		}
		affected++
	}

	return affected, nil
}

func (s *Service) SoftDelete(ctx context.Context, id string) error {
	if err := core.ValidateID(id); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "paddle deleted", slog.String("paddle_id", id))
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// applyUpdate coalesces submitted fields over the stored paddle.
// Empty request fields leave the stored value alone.
func applyUpdate(paddle *Paddle, req UpdatePaddleRequest) {
	if req.Name != "" {
		paddle.Name = req.Name
	}
	if req.Brand != "" {
		paddle.Brand = req.Brand
	}
	if req.Model != "" {
		paddle.Model = req.Model
	}
	if req.Shape != "" {
		paddle.Shape = req.Shape
	}
	if req.Thickness != "" {
		paddle.Thickness = req.Thickness
	}
	if req.HandleLength != "" {
		paddle.HandleLength = req.HandleLength
	}
	if req.Length != "" {
		paddle.Length = req.Length
	}
	if req.Width != "" {
		paddle.Width = req.Width
	}
	if req.Core != "" {
		paddle.Core = req.Core
	}
	if req.Color != "" {
		paddle.Color = req.Color
	}
	if req.Weight != "" {
		paddle.Weight = req.Weight
	}
	if req.Image != "" {
		paddle.Image = req.Image
	}
	if req.Description != "" {
		paddle.Description = req.Description
	}
	if req.PriceLink != "" {
		paddle.PriceLink = req.PriceLink
	}
}
