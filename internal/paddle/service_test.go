package paddle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paddlebook/paddlebook/internal/core"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, paddle *Paddle) error {
	args := m.Called(ctx, paddle)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Paddle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Paddle), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, paddle *Paddle) error {
	args := m.Called(ctx, paddle)
	return args.Error(0)
}

func (m *MockRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context) ([]Paddle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Paddle), args.Error(1)
}

func (m *MockRepository) Search(
	ctx context.Context,
	query string,
) ([]Paddle, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Paddle), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockPlayerSync struct {
	mock.Mock
}

func (m *MockPlayerSync) ListByEquipment(
	ctx context.Context,
	paddleName, shape, thickness string,
) ([]PlayerEquipment, error) {
	args := m.Called(ctx, paddleName, shape, thickness)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PlayerEquipment), args.Error(1)
}

func (m *MockPlayerSync) UpdateEquipment(
	ctx context.Context,
	playerID string,
	eq Equipment,
) error {
	args := m.Called(ctx, playerID, eq)
	return args.Error(0)
}

func newTestService(repo Repository, players PlayerSync) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, players, logger)
}

func TestService_Update_PropagatesToMatchingPlayers(t *testing.T) {
	repo := new(MockRepository)
	players := new(MockPlayerSync)
	svc := newTestService(repo, players)

	paddleID := uuid.NewString()
	playerID := uuid.NewString()

	repo.On("GetByID", mock.Anything, paddleID).Return(&Paddle{
		ID:        paddleID,
		Name:      "Hyperion CFS",
		Brand:     "Joola",
		Shape:     "elongated",
		Thickness: "16mm",
		Status:    StatusActive,
	}, nil).Once()

	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *Paddle) bool {
		return p.Thickness == "14mm" && p.Name == "Hyperion CFS"
	})).Return(nil).Once()

	// Matching uses the values from before the edit.
	players.On("ListByEquipment",
		mock.Anything, "Hyperion CFS", "elongated", "16mm").
		Return([]PlayerEquipment{{
			PlayerID: playerID,
			Equipment: Equipment{
				Name:      "Hyperion CFS",
				Brand:     "Joola",
				Shape:     "elongated",
				Thickness: "16mm",
				Core:      "polymer",
			},
		}}, nil).Once()

	players.On("UpdateEquipment", mock.Anything, playerID,
		mock.MatchedBy(func(eq Equipment) bool {
			return eq.Thickness == "14mm" &&
				eq.Core == "polymer" &&
				eq.Name == "Hyperion CFS"
		})).Return(nil).Once()

	result, err := svc.Update(context.Background(), paddleID,
		UpdatePaddleRequest{Thickness: "14mm"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.AffectedPlayers)
	assert.Equal(t, "14mm", result.Paddle.Thickness)
	repo.AssertExpectations(t)
	players.AssertExpectations(t)
}

func TestService_Update_SkipsShapeFilterWhenUnset(t *testing.T) {
	repo := new(MockRepository)
	players := new(MockPlayerSync)
	svc := newTestService(repo, players)

	paddleID := uuid.NewString()

	repo.On("GetByID", mock.Anything, paddleID).Return(&Paddle{
		ID:     paddleID,
		Name:   "Vanguard",
		Brand:  "Selkirk",
		Status: StatusActive,
	}, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	// Shape and thickness were never recorded on this template, so
	// only the name constrains the match.
	players.On("ListByEquipment", mock.Anything, "Vanguard", "", "").
		Return([]PlayerEquipment{}, nil).Once()

	result, err := svc.Update(context.Background(), paddleID,
		UpdatePaddleRequest{Color: "crimson"})

	require.NoError(t, err)
	assert.Equal(t, 0, result.AffectedPlayers)
	players.AssertExpectations(t)
}

func TestService_Update_EmptyFieldsKeepPlayerValues(t *testing.T) {
	repo := new(MockRepository)
	players := new(MockPlayerSync)
	svc := newTestService(repo, players)

	paddleID := uuid.NewString()
	playerID := uuid.NewString()

	repo.On("GetByID", mock.Anything, paddleID).Return(&Paddle{
		ID:     paddleID,
		Name:   "Perseus",
		Brand:  "Joola",
		Shape:  "standard",
		Status: StatusActive,
	}, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	players.On("ListByEquipment", mock.Anything, "Perseus", "standard", "").
		Return([]PlayerEquipment{{
			PlayerID: playerID,
			Equipment: Equipment{
				Name:         "Perseus",
				Brand:        "Joola",
				Shape:        "standard",
				HandleLength: "5.5in",
				Image:        "perseus.png",
			},
		}}, nil).Once()

	players.On("UpdateEquipment", mock.Anything, playerID,
		mock.MatchedBy(func(eq Equipment) bool {
			return eq.Brand == "Joola" &&
				eq.HandleLength == "5.5in" &&
				eq.Image == "perseus.png" &&
				eq.Shape == "widebody"
		})).Return(nil).Once()

	_, err := svc.Update(context.Background(), paddleID,
		UpdatePaddleRequest{Shape: "widebody"})

	require.NoError(t, err)
	players.AssertExpectations(t)
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(MockRepository)
	players := new(MockPlayerSync)
	svc := newTestService(repo, players)

	paddleID := uuid.NewString()

	repo.On("GetByID", mock.Anything, paddleID).
		Return(nil, core.ErrNotFound).Once()

	_, err := svc.Update(context.Background(), paddleID,
		UpdatePaddleRequest{Color: "blue"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
	players.AssertNotCalled(t, "ListByEquipment")
}

func TestService_Update_RejectsMalformedID(t *testing.T) {
	repo := new(MockRepository)
	players := new(MockPlayerSync)
	svc := newTestService(repo, players)

	_, err := svc.Update(context.Background(), "not-a-uuid",
		UpdatePaddleRequest{Color: "blue"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
	repo.AssertNotCalled(t, "GetByID")
}

func TestService_SoftDelete_DoesNotTouchPlayers(t *testing.T) {
	repo := new(MockRepository)
	players := new(MockPlayerSync)
	svc := newTestService(repo, players)

	paddleID := uuid.NewString()
	repo.On("SoftDelete", mock.Anything, paddleID).Return(nil).Once()

	err := svc.SoftDelete(context.Background(), paddleID)

	require.NoError(t, err)
	players.AssertNotCalled(t, "ListByEquipment")
	players.AssertNotCalled(t, "UpdateEquipment")
	repo.AssertExpectations(t)
}

func TestService_Search_BlankQueryFallsBackToList(t *testing.T) {
	repo := new(MockRepository)
	players := new(MockPlayerSync)
	svc := newTestService(repo, players)

	repo.On("List", mock.Anything).Return([]Paddle{
		{ID: uuid.NewString(), Name: "Vanguard", Status: StatusActive},
	}, nil).Once()

	results, err := svc.Search(context.Background(), "   ")

	require.NoError(t, err)
	assert.Len(t, results, 1)
	repo.AssertNotCalled(t, "Search")
}
