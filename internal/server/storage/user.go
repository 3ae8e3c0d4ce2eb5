package storage

import (
	"context"
	"time"

	"github.com/iudanet/progresskeeper/internal/models"
)

// UserStorage defines interface for anonymous user persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if user id is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UpdateLastSeen updates the last sign in timestamp
	// Returns ErrUserNotFound if user doesn't exist
	UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error
}
