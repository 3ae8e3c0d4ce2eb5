package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/progresskeeper/internal/client/storage"
)

// createTestMetadataStorage создает временное BoltDB хранилище и инициализирует buckets
func createTestMetadataStorage(t *testing.T) (*Storage, func()) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "metadata_test.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		require.NoError(t, store.Close())
		require.NoError(t, os.RemoveAll(tmpDir))
	}

	return store, cleanup
}

func TestSaveAndGetLastSyncTimestamp(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestMetadataStorage(t)
	defer cleanup()

	// Изначально, если timestamp не сохранён — ожидаем 0
	ts, err := store.GetLastSyncTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ts)

	// Сохраняем timestamp
	var expectedTS int64 = 1234567890
	err = store.SaveLastSyncTimestamp(ctx, expectedTS)
	require.NoError(t, err)

	// Получаем и проверяем
	gotTS, err := store.GetLastSyncTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, expectedTS, gotTS)
}

func TestSaveAndGetClockOffset(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestMetadataStorage(t)
	defer cleanup()

	offset, err := store.GetClockOffset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), offset)

	// Смещение может быть отрицательным (локальные часы спешат)
	require.NoError(t, store.SaveClockOffset(ctx, -3600))

	offset, err = store.GetClockOffset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(-3600), offset)

	// Значения не пересекаются
	ts, err := store.GetLastSyncTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ts)
}

func TestMetadata_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestMetadataStorage(t)
	defer cleanup()

	// Удаляем bucket metadata напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketMetadata)
	})
	require.NoError(t, err)

	_, err = store.GetLastSyncTimestamp(ctx)
	assert.ErrorContains(t, err, "metadata bucket not found")

	err = store.SaveLastSyncTimestamp(ctx, 42)
	assert.ErrorContains(t, err, "metadata bucket not found")

	_, err = store.GetClockOffset(ctx)
	assert.ErrorContains(t, err, "metadata bucket not found")
}

func TestMetadata_Closed(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestMetadataStorage(t)
	defer cleanup()

	require.NoError(t, store.Close())

	err := store.SaveClockOffset(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.GetClockOffset(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
