package comment

import (
	"time"
)

type CreateCommentRequest struct {
	Content         string  `json:"content"    validate:"required"`
	TargetType      string  `json:"targetType" validate:"required,oneof=player paddle"`
	TargetID        string  `json:"targetId"   validate:"required"`
	ParentCommentID *string `json:"parentCommentId"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type VoteRequest struct {
	VoteType string `json:"voteType" validate:"required,oneof=upvote downvote"`
}

// CommentResponse is one node of a thread tree. Replies are nested,
// oldest first at every level.
type CommentResponse struct {
	ID              string            `json:"id"`
	Content         string            `json:"content"`
	AuthorID        string            `json:"authorId"`
	AuthorName      string            `json:"authorName"`
	TargetType      string            `json:"targetType"`
	TargetID        string            `json:"targetId"`
	ParentCommentID *string           `json:"parentCommentId"`
	Depth           int               `json:"depth"`
	Upvotes         int               `json:"upvotes"`
	Downvotes       int               `json:"downvotes"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	Replies         []CommentResponse `json:"replies"`
}

func ToCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:              c.ID,
		Content:         c.Content,
		AuthorID:        c.AuthorID,
		AuthorName:      c.AuthorName,
		TargetType:      c.TargetType,
		TargetID:        c.TargetID,
		ParentCommentID: c.ParentID,
		Depth:           c.Depth,
		Upvotes:         c.Upvotes,
		Downvotes:       c.Downvotes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Replies:         []CommentResponse{},
	}
}

func ToCommentResponseList(comments []Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, ToCommentResponse(&c))
	}
	return responses
}
