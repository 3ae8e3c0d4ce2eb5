package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/progresskeeper/internal/models"
	"github.com/iudanet/progresskeeper/internal/server/storage"
)

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		user *models.User
		name string
	}{
		{
			name: "create new user successfully",
			user: &models.User{
				ID:               uuid.New().String(),
				DeviceSecretHash: "hash123",
				CreatedAt:        time.Now(),
			},
		},
		{
			name: "create user with last seen",
			user: &models.User{
				ID:               uuid.New().String(),
				DeviceSecretHash: "hash456",
				CreatedAt:        time.Now(),
				LastSeen:         timePtr(time.Now()),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, s.CreateUser(ctx, tt.user))

			// Verify user was created
			retrieved, err := s.GetUserByID(ctx, tt.user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.user.ID, retrieved.ID)
			assert.Equal(t, tt.user.DeviceSecretHash, retrieved.DeviceSecretHash)
			assert.Equal(t, tt.user.LastSeen != nil, retrieved.LastSeen != nil)
		})
	}
}

func TestUserStorage_CreateUser_DuplicateID(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.User{
		ID:               uuid.New().String(),
		DeviceSecretHash: "hash",
		CreatedAt:        time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	err := s.CreateUser(ctx, user)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_GetUserByID_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetUserByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_UpdateLastSeen(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	lastSeen := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, s.UpdateLastSeen(ctx, userID, lastSeen))

	user, err := s.GetUserByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, user.LastSeen)
	assert.True(t, lastSeen.Equal(*user.LastSeen), "expected %v, got %v", lastSeen, *user.LastSeen)

	err = s.UpdateLastSeen(ctx, uuid.New().String(), time.Now())
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
