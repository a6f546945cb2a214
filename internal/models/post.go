package models

import "time"

// Post represents a user's post. The counter columns are a denormalized
// cache of the associated like/comment rows; they are only ever mutated
// through atomic store-level increments, never read-modify-write.
type Post struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index:idx_posts_user_created"`
	Content       string    `json:"content"`
	MediaURL      *string   `json:"media_url,omitempty"` // already-stored reference, upload happens elsewhere
	LikesCount    int       `json:"likes_count" gorm:"not null;default:0"`
	CommentsCount int       `json:"comments_count" gorm:"not null;default:0"`
	SharesCount   int       `json:"shares_count" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"index:idx_posts_user_created;index:idx_posts_created"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string  `json:"content" validate:"required,min=1,max=2000"`
	MediaURL *string `json:"media_url,omitempty" validate:"omitempty,uri"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// Nil fields are left untouched.
type UpdatePostRequest struct {
	Content  *string `json:"content,omitempty" validate:"omitempty,min=1,max=2000"`
	MediaURL *string `json:"media_url,omitempty" validate:"omitempty,uri"`
}

// FeedPost is a denormalized feed row: post fields plus a summary of the
// authoring user, assembled in a single query.
type FeedPost struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Content       string    `json:"content"`
	MediaURL      *string   `json:"media_url,omitempty"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	SharesCount   int       `json:"shares_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	AuthorName    string    `json:"author_name"`
	AuthorEmail   string    `json:"author_email"`
	AuthorAvatar  *string   `json:"author_avatar,omitempty"`
}
