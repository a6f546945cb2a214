package models

import "time"

// Video represents an uploaded video. ViewsCount is fire-and-forget:
// every read increments it, there is no uniqueness constraint.
type Video struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	FileURL      string    `json:"file_url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	DurationSecs int       `json:"duration_secs"`
	ViewsCount   int       `json:"views_count" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateVideoRequest defines the request body for registering a video.
// The file and thumbnail are already stored; only their references arrive.
type CreateVideoRequest struct {
	Title        string  `json:"title" validate:"required,min=1,max=200"`
	Description  string  `json:"description" validate:"max=2000"`
	FileURL      string  `json:"file_url" validate:"required,uri"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" validate:"omitempty,uri"`
	DurationSecs int     `json:"duration_secs" validate:"min=0"`
}

// UpdateVideoRequest defines the request body for editing a video's
// details. Nil fields are left untouched.
type UpdateVideoRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// VideoView is a video row with its uploader's email, joined in one query
type VideoView struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	FileURL      string    `json:"file_url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	DurationSecs int       `json:"duration_secs"`
	ViewsCount   int       `json:"views_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserEmail    string    `json:"user_email"`
}
