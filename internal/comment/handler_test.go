package comment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
	"github.com/paddlebook/paddlebook/internal/middleware"
)

func passthrough(next http.Handler) http.Handler {
	return next
}

// identityFor simulates the authenticator having already validated a
// bearer token for the given user.
func identityFor(userID, username, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
			ctx = context.WithValue(ctx, middleware.UsernameKey, username)
			ctx = context.WithValue(ctx, middleware.UserRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(repo Repository, userID, username, role string) chi.Router {
	handler := NewHandler(newTestService(repo))
	r := chi.NewRouter()
	handler.RegisterRoutes(
		r,
		identityFor(userID, username, role),
		middleware.RequireAdmin,
		passthrough,
	)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func TestHandler_ListForTarget_ReturnsTree(t *testing.T) {
	repo := new(MockRepository)
	router := newTestRouter(repo, uuid.NewString(), "alice", "user")

	targetID := uuid.NewString()
	parentID := uuid.NewString()
	replyID := uuid.NewString()
	base := time.Now()

	repo.On("ListByTarget", mock.Anything, TargetPaddle, targetID).
		Return([]Comment{
			{
				ID:         parentID,
				Content:    "solid paddle",
				TargetType: TargetPaddle,
				TargetID:   targetID,
				Status:     StatusActive,
				CreatedAt:  base,
			},
			{
				ID:         replyID,
				Content:    "agreed",
				TargetType: TargetPaddle,
				TargetID:   targetID,
				ParentID:   &parentID,
				Depth:      1,
				Status:     StatusActive,
				CreatedAt:  base.Add(time.Minute),
			},
		}, nil).Once()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/comments/paddle/"+targetID, nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)

	var tree []CommentResponse
	require.NoError(t, json.Unmarshal(body.Data, &tree))
	require.Len(t, tree, 1)
	assert.Equal(t, parentID, tree[0].ID)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, replyID, tree[0].Replies[0].ID)
}

func TestHandler_ListForTarget_BadTargetType(t *testing.T) {
	repo := new(MockRepository)
	router := newTestRouter(repo, uuid.NewString(), "alice", "user")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/comments/sponsor/"+uuid.NewString(), nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Message)
}

func TestHandler_Create_UsesAuthenticatedIdentity(t *testing.T) {
	repo := new(MockRepository)
	userID := uuid.NewString()
	router := newTestRouter(repo, userID, "alice", "user")

	targetID := uuid.NewString()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Comment) bool {
		return c.AuthorID == userID && c.AuthorName == "alice"
	})).Return(nil).Once()

	payload := `{"content":"nice footwork","targetType":"player",` +
		`"targetId":"` + targetID + `"}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/comments",
		strings.NewReader(payload))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	repo.AssertExpectations(t)
}

func TestHandler_Create_RejectsInvalidBody(t *testing.T) {
	repo := new(MockRepository)
	router := newTestRouter(repo, uuid.NewString(), "alice", "user")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/comments",
		strings.NewReader(`{"content":""}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestHandler_AdminRoutes_ForbiddenForRegularUser(t *testing.T) {
	repo := new(MockRepository)
	router := newTestRouter(repo, uuid.NewString(), "alice", "user")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/comments/admin/all", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	repo.AssertNotCalled(t, "ListRecent")
}

func TestHandler_AdminDelete_ReportsRemovedCount(t *testing.T) {
	repo := new(MockRepository)
	router := newTestRouter(repo, uuid.NewString(), "mod", "admin")

	commentID := uuid.NewString()
	repo.On("HardDeleteTree", mock.Anything, commentID).Return(3, nil).Once()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete,
		"/comments/admin/"+commentID, nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Contains(t, body.Message, "3")
	repo.AssertExpectations(t)
}
