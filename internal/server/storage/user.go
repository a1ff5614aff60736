package storage

import (
	"context"

	"github.com/regretshq/regrets/internal/models"
)

// UserStore defines interface for user data persistence
type UserStore interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if the email is already taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves user by email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
