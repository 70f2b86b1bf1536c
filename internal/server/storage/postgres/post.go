package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/postboard/internal/models"
	"github.com/iudanet/postboard/internal/server/storage"
)

// CreatePost stores a new post, filling CreatedAt if it is zero
func (s *Storage) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (post_title, post_text, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING post_id
	`

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	err := s.db.QueryRowContext(ctx, query, post.Title, post.Text, post.UserID, post.CreatedAt).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// ListPosts returns all posts, newest first
func (s *Storage) ListPosts(ctx context.Context, viewerID int64) ([]*models.Post, error) {
	query := `
		SELECT p.post_id, p.post_title, p.post_text, p.user_id, p.created_at,
			(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.post_id) AS num_likes,
			EXISTS (SELECT 1 FROM likes l WHERE l.post_id = p.post_id AND l.user_id = $1) AS user_liked
		FROM posts p
		ORDER BY p.post_id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		post := &models.Post{}
		var liked bool

		if err := rows.Scan(&post.ID, &post.Title, &post.Text, &post.UserID, &post.CreatedAt, &post.NumLikes, &liked); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}

		if viewerID > 0 {
			post.UserLiked = &liked
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// LikePost records a like, ignoring duplicates
func (s *Storage) LikePost(ctx context.Context, like models.Like) error {
	return s.withPost(ctx, like.PostID, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO likes (user_id, post_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			like.UserID, like.PostID)
		if err != nil {
			return fmt.Errorf("failed to insert like: %w", err)
		}
		return nil
	})
}

// UnlikePost removes a like if present
func (s *Storage) UnlikePost(ctx context.Context, like models.Like) error {
	return s.withPost(ctx, like.PostID, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`,
			like.UserID, like.PostID)
		if err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}
		return nil
	})
}

func (s *Storage) withPost(ctx context.Context, postID int64, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE post_id = $1 FOR SHARE`, postID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrPostNotFound
		}
		return fmt.Errorf("failed to get post: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
