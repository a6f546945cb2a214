package models

import "time"

// Like represents a like on a post. The composite unique index is the
// authoritative guard against duplicate likes: a concurrent second insert
// fails at the store level regardless of any application-side check.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_likes_post_user"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_likes_post_user"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeView is a like with the liking user's summary
type LikeView struct {
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	LikedAt   time.Time `json:"liked_at"`
}
