package storage

import (
	"context"
)

// AuthStorage defines interface for storing the anonymous device session on client
type AuthStorage interface {
	// SaveAuth stores session data
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored session data
	// Returns ErrAuthNotFound if no session exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored session data (logout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated checks if a non-expired access token exists
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents the device session in storage.
// DeviceSecret is issued once by the server and lets the device
// sign in again as the same anonymous user after the token expires.
type AuthData struct {
	UserID       string `json:"user_id"`
	DeviceSecret string `json:"device_secret"`
	AccessToken  string `json:"access_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
}
