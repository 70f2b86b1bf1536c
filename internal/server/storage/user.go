package storage

import (
	"context"

	"github.com/iudanet/postboard/internal/models"
)

//go:generate moq -out storage_mock.go . UserStorage PostStorage

// UserStorage defines interface for credential persistence.
// Users are never updated or deleted.
type UserStorage interface {
	// CreateUser creates a new user in the storage and sets user.ID.
	// Uniqueness of the username is enforced atomically by the storage;
	// returns ErrUserAlreadyExists if username already exists
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}
