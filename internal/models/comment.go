package models

import "time"

// Comment represents a comment on a post. LikesCount is reserved: the
// column exists but no service mutates it yet.
type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PostID     uint      `json:"post_id" gorm:"index"`
	UserID     uint      `json:"user_id" gorm:"index"`
	Content    string    `json:"content"`
	LikesCount int       `json:"likes_count" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for updating an existing
// comment. An empty content is treated as a no-op, not an error.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"omitempty,max=500"`
}

// CommentView is a denormalized comment row with its author summary,
// assembled in a single query.
type CommentView struct {
	ID           uint      `json:"id"`
	PostID       uint      `json:"post_id"`
	UserID       uint      `json:"user_id"`
	Content      string    `json:"content"`
	LikesCount   int       `json:"likes_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	AuthorName   string    `json:"author_name"`
	AuthorEmail  string    `json:"author_email"`
	AuthorAvatar *string   `json:"author_avatar,omitempty"`
}
