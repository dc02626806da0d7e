package comment

import (
	"time"
)

// Comment is a single entry in a target's discussion thread. Vote
// totals are aggregated from comment_votes at read time, not stored
// on the row.
type Comment struct {
	ID         string    `db:"id"`
	Content    string    `db:"content"`
	AuthorID   string    `db:"author_id"`
	AuthorName string    `db:"author_name"`
	TargetType string    `db:"target_type"`
	TargetID   string    `db:"target_id"`
	ParentID   *string   `db:"parent_id"`
	Depth      int       `db:"depth"`
	Status     string    `db:"status"`
	Upvotes    int       `db:"upvotes"`
	Downvotes  int       `db:"downvotes"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

const (
	TargetPlayer = "player"
	TargetPaddle = "paddle"

	StatusActive  = "active"
	StatusDeleted = "deleted"

	VoteUp   = "upvote"
	VoteDown = "downvote"

	// MaxDepth caps reply nesting: a top-level comment sits at depth 0
	// and the deepest allowed reply at depth 3.
	MaxDepth = 3

	MaxContentLength = 1000
)

func (c *Comment) IsActive() bool {
	return c.Status == StatusActive
}

func ValidTargetType(t string) bool {
	return t == TargetPlayer || t == TargetPaddle
}
