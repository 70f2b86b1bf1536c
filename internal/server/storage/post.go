package storage

import (
	"context"

	"github.com/iudanet/postboard/internal/models"
)

// PostStorage defines interface for posts and likes persistence
type PostStorage interface {
	// CreatePost stores a new post and sets post.ID and post.CreatedAt
	CreatePost(ctx context.Context, post *models.Post) error

	// ListPosts returns all posts, newest first, with like counts.
	// If viewerID is positive, Post.UserLiked is filled for that user
	ListPosts(ctx context.Context, viewerID int64) ([]*models.Post, error)

	// LikePost records a like. Liking twice is a no-op.
	// Returns ErrPostNotFound if post doesn't exist
	LikePost(ctx context.Context, like models.Like) error

	// UnlikePost removes a like. Removing a missing like is a no-op.
	// Returns ErrPostNotFound if post doesn't exist
	UnlikePost(ctx context.Context, like models.Like) error
}

// Pinger is implemented by storages that can report their health
type Pinger interface {
	Ping(ctx context.Context) error
}
