package player

import (
	"context"
	"log/slog"
	"strings"

	"github.com/paddlebook/paddlebook/internal/core"
	"github.com/paddlebook/paddlebook/internal/paddle"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

var _ paddle.PlayerSync = (*Service)(nil)

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]PlayerResponse, error) {
	players, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToPlayerResponseList(players), nil
}

func (s *Service) Get(ctx context.Context, id string) (*PlayerResponse, error) {
	if err := core.ValidateID(id); err != nil {
		return nil, err
	}

	player, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToPlayerResponse(player)
	return &resp, nil
}

func (s *Service) Create(
	ctx context.Context,
	req CreatePlayerRequest,
) (*PlayerResponse, error) {
	player := &Player{
		ID:                 core.NewID(),
		Name:               strings.TrimSpace(req.Name),
		Image:              req.Image,
		Age:                req.Age,
		Height:             req.Height,
		Sponsor:            req.Sponsor,
		Shoes:              req.Shoes,
		Paddle:             strings.TrimSpace(req.Paddle),
		PaddleBrand:        req.PaddleBrand,
		PaddleModel:        req.PaddleModel,
		PaddleShape:        req.PaddleShape,
		PaddleThickness:    req.PaddleThickness,
		PaddleHandleLength: req.PaddleHandleLength,
		PaddleLength:       req.PaddleLength,
		PaddleWidth:        req.PaddleWidth,
		PaddleCore:         req.PaddleCore,
		PaddleImage:        req.PaddleImage,
	}

	if err := s.repo.Create(ctx, player); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "player created",
		slog.String("player_id", player.ID),
		slog.String("name", player.Name),
	)

	resp := ToPlayerResponse(player)
	return &resp, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdatePlayerRequest,
) (*PlayerResponse, error) {
	if err := core.ValidateID(id); err != nil {
		return nil, err
	}

	player, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(player, req)

	if err := s.repo.Update(ctx, player); err != nil {
		return nil, err
	}

	resp := ToPlayerResponse(player)
	return &resp, nil
}

// Delete removes the player row outright. Player records carry no
// history worth keeping, unlike paddles and comments.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := core.ValidateID(id); err != nil {
		return err
	}

	if err := s.repo.HardDelete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "player deleted", slog.String("player_id", id))
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// ListByEquipment exposes matched players to the paddle propagation
// pass in its own terms.
func (s *Service) ListByEquipment(
	ctx context.Context,
	paddleName, shape, thickness string,
) ([]paddle.PlayerEquipment, error) {
	players, err := s.repo.ListByEquipment(ctx, paddleName, shape, thickness)
	if err != nil {
		return nil, err
	}

	matches := make([]paddle.PlayerEquipment, 0, len(players))
	for _, p := range players {
		matches = append(matches, paddle.PlayerEquipment{
			PlayerID: p.ID,
			Equipment: paddle.Equipment{
				Name:         p.Paddle,
				Brand:        p.PaddleBrand,
				Model:        p.PaddleModel,
				Shape:        p.PaddleShape,
				Thickness:    p.PaddleThickness,
				HandleLength: p.PaddleHandleLength,
				Length:       p.PaddleLength,
				Width:        p.PaddleWidth,
				Core:         p.PaddleCore,
				Image:        p.PaddleImage,
			},
		})
	}

	return matches, nil
}

func (s *Service) UpdateEquipment(
	ctx context.Context,
	playerID string,
	eq paddle.Equipment,
) error {
	player := &Player{
		ID:                 playerID,
		Paddle:             eq.Name,
		PaddleBrand:        eq.Brand,
		PaddleModel:        eq.Model,
		PaddleShape:        eq.Shape,
		PaddleThickness:    eq.Thickness,
		PaddleHandleLength: eq.HandleLength,
		PaddleLength:       eq.Length,
		PaddleWidth:        eq.Width,
		PaddleCore:         eq.Core,
		PaddleImage:        eq.Image,
	}

	return s.repo.UpdateEquipment(ctx, player)
}

func applyUpdate(player *Player, req UpdatePlayerRequest) {
	if req.Name != "" {
		player.Name = req.Name
	}
	if req.Image != "" {
		player.Image = req.Image
	}
	if req.Age != "" {
		player.Age = req.Age
	}
	if req.Height != "" {
		player.Height = req.Height
	}
	if req.Sponsor != "" {
		player.Sponsor = req.Sponsor
	}
	if req.Shoes != "" {
		player.Shoes = req.Shoes
	}
	if req.Paddle != "" {
		player.Paddle = req.Paddle
	}
	if req.PaddleBrand != "" {
		player.PaddleBrand = req.PaddleBrand
	}
	if req.PaddleModel != "" {
		player.PaddleModel = req.PaddleModel
	}
	if req.PaddleShape != "" {
		player.PaddleShape = req.PaddleShape
	}
	if req.PaddleThickness != "" {
		player.PaddleThickness = req.PaddleThickness
	}
	if req.PaddleHandleLength != "" {
		player.PaddleHandleLength = req.PaddleHandleLength
	}
	if req.PaddleLength != "" {
		player.PaddleLength = req.PaddleLength
	}
	if req.PaddleWidth != "" {
		player.PaddleWidth = req.PaddleWidth
	}
	if req.PaddleCore != "" {
		player.PaddleCore = req.PaddleCore
	}
	if req.PaddleImage != "" {
		player.PaddleImage = req.PaddleImage
	}
}
