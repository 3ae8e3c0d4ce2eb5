package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/progresskeeper/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage) string {
	userID := uuid.New().String()
	err := s.CreateUser(ctx, &models.User{
		ID:               userID,
		DeviceSecretHash: "hash",
		CreatedAt:        time.Now(),
	})
	require.NoError(t, err)
	return userID
}

func TestNew_RunsMigrations(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	for _, table := range []string{"users", "documents", "server_time"} {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestNew_FileDatabaseReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "server.db")

	s, err := New(ctx, path)
	require.NoError(t, err)
	userID := createTestUser(t, ctx, s)
	require.NoError(t, s.Close())

	// Повторное открытие не падает на уже примененных миграциях
	s, err = New(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	user, err := s.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}

func TestNew_ParallelInMemory(t *testing.T) {
	ctx := context.Background()

	// Каждое хранилище мигрирует свою базу независимо
	for i := 0; i < 4; i++ {
		t.Run("store", func(t *testing.T) {
			t.Parallel()

			s, err := New(ctx, ":memory:")
			require.NoError(t, err)
			defer s.Close()

			require.NoError(t, s.PingContext(ctx))
			createTestUser(t, ctx, s)
		})
	}
}

func TestPingContext_Closed(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	cleanup()

	assert.Error(t, s.PingContext(context.Background()))
}
