package comment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
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

func (m *MockRepository) Create(ctx context.Context, comment *Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Comment), args.Error(1)
}

func (m *MockRepository) ListByTarget(
	ctx context.Context,
	targetType, targetID string,
) ([]Comment, error) {
	args := m.Called(ctx, targetType, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Comment), args.Error(1)
}

func (m *MockRepository) ListByAuthor(
	ctx context.Context,
	authorID string,
) ([]Comment, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Comment), args.Error(1)
}

func (m *MockRepository) ListRecent(
	ctx context.Context,
	limit int,
) ([]Comment, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Comment), args.Error(1)
}

func (m *MockRepository) UpdateContent(
	ctx context.Context,
	id, content string,
) (*Comment, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Comment), args.Error(1)
}

func (m *MockRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) HardDeleteTree(
	ctx context.Context,
	id string,
) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetVote(
	ctx context.Context,
	commentID, userID string,
) (string, error) {
	args := m.Called(ctx, commentID, userID)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) UpsertVote(
	ctx context.Context,
	commentID, userID, voteType string,
) error {
	args := m.Called(ctx, commentID, userID, voteType)
	return args.Error(0)
}

func (m *MockRepository) DeleteVote(
	ctx context.Context,
	commentID, userID string,
) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

func (m *MockRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newTestService(repo Repository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger)
}

func TestService_Create_TopLevel(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	targetID := uuid.NewString()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Comment) bool {
		return c.Depth == 0 &&
			c.ParentID == nil &&
			c.Status == StatusActive &&
			c.Content == "great paddle control"
	})).Return(nil).Once()

	resp, err := svc.Create(context.Background(), uuid.NewString(), "alice",
		CreateCommentRequest{
			Content:    "  great paddle control  ",
			TargetType: TargetPaddle,
			TargetID:   targetID,
		})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Depth)
	assert.Equal(t, "great paddle control", resp.Content)
	repo.AssertExpectations(t)
}

func TestService_Create_ReplyDepthIncrements(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	targetID := uuid.NewString()
	parentID := uuid.NewString()

	repo.On("GetByID", mock.Anything, parentID).Return(&Comment{
		ID:         parentID,
		TargetType: TargetPlayer,
		TargetID:   targetID,
		Depth:      1,
		Status:     StatusActive,
	}, nil).Once()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Comment) bool {
		return c.Depth == 2 && c.ParentID != nil && *c.ParentID == parentID
	})).Return(nil).Once()

	resp, err := svc.Create(context.Background(), uuid.NewString(), "bob",
		CreateCommentRequest{
			Content:         "agreed",
			TargetType:      TargetPlayer,
			TargetID:        targetID,
			ParentCommentID: &parentID,
		})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Depth)
	repo.AssertExpectations(t)
}

func TestService_Create_RejectsReplyBeyondMaxDepth(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	targetID := uuid.NewString()
	parentID := uuid.NewString()

	repo.On("GetByID", mock.Anything, parentID).Return(&Comment{
		ID:         parentID,
		TargetType: TargetPaddle,
		TargetID:   targetID,
		Depth:      MaxDepth,
		Status:     StatusActive,
	}, nil).Once()

	_, err := svc.Create(context.Background(), uuid.NewString(), "bob",
		CreateCommentRequest{
			Content:         "too deep",
			TargetType:      TargetPaddle,
			TargetID:        targetID,
			ParentCommentID: &parentID,
		})

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
	repo.AssertNotCalled(t, "Create")
}

func TestService_Create_RejectsParentOnDifferentTarget(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	parentID := uuid.NewString()

	repo.On("GetByID", mock.Anything, parentID).Return(&Comment{
		ID:         parentID,
		TargetType: TargetPlayer,
		TargetID:   uuid.NewString(),
		Depth:      0,
		Status:     StatusActive,
	}, nil).Once()

	_, err := svc.Create(context.Background(), uuid.NewString(), "bob",
		CreateCommentRequest{
			Content:         "wrong thread",
			TargetType:      TargetPaddle,
			TargetID:        uuid.NewString(),
			ParentCommentID: &parentID,
		})

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestService_Create_RejectsReplyToDeletedParent(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	targetID := uuid.NewString()
	parentID := uuid.NewString()

	repo.On("GetByID", mock.Anything, parentID).Return(&Comment{
		ID:         parentID,
		TargetType: TargetPaddle,
		TargetID:   targetID,
		Depth:      0,
		Status:     StatusDeleted,
	}, nil).Once()

	_, err := svc.Create(context.Background(), uuid.NewString(), "bob",
		CreateCommentRequest{
			Content:         "anyone here",
			TargetType:      TargetPaddle,
			TargetID:        targetID,
			ParentCommentID: &parentID,
		})

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestService_Create_ContentValidation(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)
	targetID := uuid.NewString()

	cases := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"empty", "", true},
		{"whitespace only", "   \n\t ", true},
		{"at limit", strings.Repeat("a", MaxContentLength), false},
		{"over limit", strings.Repeat("a", MaxContentLength+1), true},
		// The limit counts characters, not bytes.
		{"multibyte at limit", strings.Repeat("é", MaxContentLength), false},
		{"multibyte over limit", strings.Repeat("é", MaxContentLength+1), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.wantErr {
				repo.On("Create", mock.Anything, mock.Anything).
					Return(nil).Once()
			}

			_, err := svc.Create(
				context.Background(), uuid.NewString(), "alice",
				CreateCommentRequest{
					Content:    tc.content,
					TargetType: TargetPaddle,
					TargetID:   targetID,
				})

			if tc.wantErr {
				assert.True(t, errors.Is(err, core.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_Update_OnlyAuthor(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	commentID := uuid.NewString()
	authorID := uuid.NewString()

	repo.On("GetByID", mock.Anything, commentID).Return(&Comment{
		ID:       commentID,
		AuthorID: authorID,
		Status:   StatusActive,
	}, nil).Once()

	_, err := svc.Update(context.Background(), commentID, uuid.NewString(),
		UpdateCommentRequest{Content: "edited"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrForbidden))
	repo.AssertNotCalled(t, "UpdateContent")
}

func TestService_Update_RejectsDeletedComment(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	commentID := uuid.NewString()
	authorID := uuid.NewString()

	repo.On("GetByID", mock.Anything, commentID).Return(&Comment{
		ID:       commentID,
		AuthorID: authorID,
		Status:   StatusDeleted,
	}, nil).Once()

	_, err := svc.Update(context.Background(), commentID, authorID,
		UpdateCommentRequest{Content: "edited"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
	repo.AssertNotCalled(t, "UpdateContent")
}

func TestService_SoftDelete_OnlyAuthor(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	commentID := uuid.NewString()

	repo.On("GetByID", mock.Anything, commentID).Return(&Comment{
		ID:       commentID,
		AuthorID: uuid.NewString(),
		Status:   StatusActive,
	}, nil).Once()

	err := svc.SoftDelete(context.Background(), commentID, uuid.NewString())

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrForbidden))
	repo.AssertNotCalled(t, "SoftDelete")
}

func TestService_SoftDelete_AlreadyDeleted(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	commentID := uuid.NewString()
	authorID := uuid.NewString()

	repo.On("GetByID", mock.Anything, commentID).Return(&Comment{
		ID:       commentID,
		AuthorID: authorID,
		Status:   StatusDeleted,
	}, nil).Once()

	err := svc.SoftDelete(context.Background(), commentID, authorID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestService_Vote_TogglesOffOnRepeat(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	commentID := uuid.NewString()
	userID := uuid.NewString()
	active := &Comment{ID: commentID, Status: StatusActive}

	repo.On("GetByID", mock.Anything, commentID).Return(active, nil).Twice()
	repo.On("GetVote", mock.Anything, commentID, userID).
		Return(VoteUp, nil).Once()
	repo.On("DeleteVote", mock.Anything, commentID, userID).
		Return(nil).Once()

	_, err := svc.Vote(context.Background(), commentID, userID,
		VoteRequest{VoteType: VoteUp})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "UpsertVote")
	repo.AssertExpectations(t)
}

func TestService_Vote_ReplacesOppositeVote(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	commentID := uuid.NewString()
	userID := uuid.NewString()
	active := &Comment{ID: commentID, Status: StatusActive}

	repo.On("GetByID", mock.Anything, commentID).Return(active, nil).Twice()
	repo.On("GetVote", mock.Anything, commentID, userID).
		Return(VoteUp, nil).Once()
	repo.On("UpsertVote", mock.Anything, commentID, userID, VoteDown).
		Return(nil).Once()

	_, err := svc.Vote(context.Background(), commentID, userID,
		VoteRequest{VoteType: VoteDown})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "DeleteVote")
	repo.AssertExpectations(t)
}

func TestService_Vote_DeletedCommentNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	commentID := uuid.NewString()

	repo.On("GetByID", mock.Anything, commentID).Return(&Comment{
		ID:     commentID,
		Status: StatusDeleted,
	}, nil).Once()

	_, err := svc.Vote(context.Background(), commentID, uuid.NewString(),
		VoteRequest{VoteType: VoteUp})

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestService_ListForTarget_RejectsBadTargetType(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	_, err := svc.ListForTarget(
		context.Background(), "sponsor", uuid.NewString())

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestService_AdminHardDelete_ReturnsRemovedCount(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	commentID := uuid.NewString()
	repo.On("HardDeleteTree", mock.Anything, commentID).Return(4, nil).Once()

	removed, err := svc.AdminHardDelete(context.Background(), commentID)

	require.NoError(t, err)
	assert.Equal(t, 4, removed)
	repo.AssertExpectations(t)
}
