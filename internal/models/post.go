package models

import "time"

// Post is a short text message visible to everyone.
type Post struct {
	CreatedAt time.Time `json:"created_at"`
	UserLiked *bool     `json:"user_liked,omitempty"` // only set when the viewer is authenticated
	Title     string    `json:"post_title"`
	Text      string    `json:"post_text"`
	ID        int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	NumLikes  int64     `json:"num_likes"`
}

// Like links a user to a post they liked.
type Like struct {
	UserID int64 `json:"user_id"`
	PostID int64 `json:"post_id"`
}
