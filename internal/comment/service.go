package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/paddlebook/paddlebook/internal/core"
)

const recentCommentsLimit = 50

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListForTarget returns the threaded comment tree for one player or
// paddle page.
func (s *Service) ListForTarget(
	ctx context.Context,
	targetType, targetID string,
) ([]CommentResponse, error) {
	if !ValidTargetType(targetType) {
		return nil, core.InvalidInputError("targetType must be player or paddle")
	}
	if err := core.ValidateID(targetID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByTarget(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}

	return BuildTree(comments), nil
}

func (s *Service) Create(
	ctx context.Context,
	authorID, authorName string,
	req CreateCommentRequest,
) (*CommentResponse, error) {
	content, err := validateContent(req.Content)
	if err != nil {
		return nil, err
	}
	if !ValidTargetType(req.TargetType) {
		return nil, core.InvalidInputError("targetType must be player or paddle")
	}
	if err := core.ValidateID(req.TargetID); err != nil {
		return nil, err
	}

	depth := 0
	if req.ParentCommentID != nil {
		parent, err := s.resolveParent(ctx, *req.ParentCommentID, req)
		if err != nil {
			return nil, err
		}
		depth = parent.Depth + 1
	}

	comment := &Comment{
		ID:         core.NewID(),
		Content:    content,
		AuthorID:   authorID,
		AuthorName: authorName,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		ParentID:   req.ParentCommentID,
		Depth:      depth,
		Status:     StatusActive,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "comment created",
		slog.String("comment_id", comment.ID),
		slog.String("target_type", comment.TargetType),
		slog.String("target_id", comment.TargetID),
		slog.Int("depth", comment.Depth),
	)

	resp := ToCommentResponse(comment)
	return &resp, nil
}

func (s *Service) resolveParent(
	ctx context.Context,
	parentID string,
	req CreateCommentRequest,
) (*Comment, error) {
	if err := core.ValidateID(parentID); err != nil {
		return nil, err
	}

	parent, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	if !parent.IsActive() {
		return nil, core.InvalidInputError("cannot reply to a deleted comment")
	}
	if parent.TargetType != req.TargetType || parent.TargetID != req.TargetID {
		return nil, core.InvalidInputError(
			"parent comment belongs to a different target")
	}
	if parent.Depth >= MaxDepth {
		return nil, core.InvalidInputError(fmt.Sprintf(
			"maximum reply depth of %d reached", MaxDepth))
	}

	return parent, nil
}

// Update edits a comment's text. Only the author may edit, and only
// while the comment is still active.
func (s *Service) Update(
	ctx context.Context,
	id, requesterID string,
	req UpdateCommentRequest,
) (*CommentResponse, error) {
	if err := core.ValidateID(id); err != nil {
		return nil, err
	}

	content, err := validateContent(req.Content)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != requesterID {
		return nil, core.ForbiddenError("only the author can edit this comment")
	}
	if !comment.IsActive() {
		return nil, core.InvalidInputError("cannot edit a deleted comment")
	}

	updated, err := s.repo.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, err
	}

	resp := ToCommentResponse(updated)
	return &resp, nil
}

// SoftDelete blanks a comment out of the thread while keeping its
// replies anchored. Only the author may do this.
func (s *Service) SoftDelete(ctx context.Context, id, requesterID string) error {
	if err := core.ValidateID(id); err != nil {
		return err
	}

	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.AuthorID != requesterID {
		return core.ForbiddenError("only the author can delete this comment")
	}
	if !comment.IsActive() {
		return core.InvalidInputError("comment is already deleted")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "comment deleted", slog.String("comment_id", id))
	return nil
}

// AdminHardDelete removes a comment and its entire reply subtree.
func (s *Service) AdminHardDelete(ctx context.Context, id string) (int, error) {
	if err := core.ValidateID(id); err != nil {
		return 0, err
	}

	removed, err := s.repo.HardDeleteTree(ctx, id)
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "comment tree removed",
		slog.String("comment_id", id),
		slog.Int("removed", removed),
	)

	return removed, nil
}

// Vote records one user's vote on a comment. Submitting the same vote
// again clears it; submitting the opposite vote replaces it.
func (s *Service) Vote(
	ctx context.Context,
	id, userID string,
	req VoteRequest,
) (*CommentResponse, error) {
	if err := core.ValidateID(id); err != nil {
		return nil, err
	}
	if req.VoteType != VoteUp && req.VoteType != VoteDown {
		return nil, core.InvalidInputError("voteType must be upvote or downvote")
	}

	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !comment.IsActive() {
		return nil, core.NotFoundError("comment")
	}

	existing, err := s.repo.GetVote(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if existing == req.VoteType {
		err = s.repo.DeleteVote(ctx, id, userID)
	} else {
		err = s.repo.UpsertVote(ctx, id, userID, req.VoteType)
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToCommentResponse(updated)
	return &resp, nil
}

// ListMine returns the requester's active comments, newest first, as
// a flat list.
func (s *Service) ListMine(
	ctx context.Context,
	userID string,
) ([]CommentResponse, error) {
	comments, err := s.repo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToCommentResponseList(comments), nil
}

// AdminListRecent returns the newest active comments across all
// targets for the moderation view.
func (s *Service) AdminListRecent(ctx context.Context) ([]CommentResponse, error) {
	comments, err := s.repo.ListRecent(ctx, recentCommentsLimit)
	if err != nil {
		return nil, err
	}

	return ToCommentResponseList(comments), nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", core.InvalidInputError("content must not be empty")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return "", core.InvalidInputError(fmt.Sprintf(
			"content must be at most %d characters", MaxContentLength))
	}
	return content, nil
}
