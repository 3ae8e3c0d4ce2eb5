package sync

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/progresskeeper/internal/client/remote"
	"github.com/iudanet/progresskeeper/internal/client/storage"
	"github.com/iudanet/progresskeeper/internal/client/storage/boltdb"
	"github.com/iudanet/progresskeeper/internal/models"
)

func newLocalWith(entries ...*models.Entry) *storage.RecordStorageMock {
	return &storage.RecordStorageMock{
		LoadAllFunc: func(ctx context.Context, collection string) ([]*models.Entry, error) {
			return entries, nil
		},
		SaveFunc: func(ctx context.Context, collection string, entry *models.Entry) error {
			return nil
		},
	}
}

func newRemoteWith(entries ...*models.Entry) *remote.CollectionReaderMock {
	return &remote.CollectionReaderMock{
		GetCollectionFunc: func(ctx context.Context, collection string) ([]*models.Entry, error) {
			return entries, nil
		},
	}
}

func TestMergeAndInitialize_RemoteNewerIsPersisted(t *testing.T) {
	local := newLocalWith(newCurrencyEntry(t, "gold", 100, 10))
	reader := newRemoteWith(newCurrencyEntry(t, "gold", 150, 20))

	result, err := MergeAndInitialize(context.Background(), models.CollectionCurrencies, local, reader, testLogger())
	require.NoError(t, err)

	assert.True(t, result.RemoteAvailable)
	require.Len(t, result.Merged, 1)
	assert.Equal(t, float64(150), decodeAmount(t, result.Merged["gold"]))
	assert.Equal(t, int64(20), result.Merged["gold"].LastModified)
	assert.Empty(t, result.LocalWins)

	// Согласованное значение записано в локальное хранилище
	calls := local.SaveCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, models.CollectionCurrencies, calls[0].Collection)
	assert.Equal(t, float64(150), decodeAmount(t, calls[0].Entry))
	assert.Equal(t, int64(20), calls[0].Entry.LastModified)
}

func TestMergeAndInitialize_LocalWins(t *testing.T) {
	local := newLocalWith(
		newCurrencyEntry(t, "gold", 500, 30), // новее сервера
		newCurrencyEntry(t, "wood", 1, 5),    // нет на сервере
	)
	reader := newRemoteWith(
		newCurrencyEntry(t, "gold", 150, 20),
		newCurrencyEntry(t, "stone", 9, 9),
	)

	result, err := MergeAndInitialize(context.Background(), models.CollectionCurrencies, local, reader, testLogger())
	require.NoError(t, err)

	assert.Len(t, result.Merged, 3)
	assert.Len(t, local.SaveCalls(), 3)

	ids := make([]string, 0, len(result.LocalWins))
	for _, e := range result.LocalWins {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []string{"gold", "wood"}, ids)
	assert.Equal(t, float64(500), decodeAmount(t, result.Merged["gold"]))
}

func TestMergeAndInitialize_RemoteUnavailable(t *testing.T) {
	local := newLocalWith(newCurrencyEntry(t, "gold", 100, 10))
	reader := &remote.CollectionReaderMock{
		GetCollectionFunc: func(ctx context.Context, collection string) ([]*models.Entry, error) {
			return nil, remote.ErrUnauthenticated
		},
	}

	result, err := MergeAndInitialize(context.Background(), models.CollectionCurrencies, local, reader, testLogger())
	require.NoError(t, err)

	assert.False(t, result.RemoteAvailable)
	assert.Len(t, result.Merged, 1)
	assert.Empty(t, result.LocalWins)
	assert.Empty(t, local.SaveCalls())
}

func TestMergeAndInitialize_SkipsMalformed(t *testing.T) {
	local := newLocalWith(
		newCurrencyEntry(t, "gold", 100, 10),
		&models.Entry{Collection: models.CollectionUpgrades, ID: "axe", Payload: json.RawMessage(`{}`)},
	)
	reader := newRemoteWith(
		newCurrencyEntry(t, "wood", 3, 3),
		&models.Entry{Collection: models.CollectionCurrencies, ID: "broken", Payload: json.RawMessage(`{not json`)},
	)

	result, err := MergeAndInitialize(context.Background(), models.CollectionCurrencies, local, reader, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Merged, 2)
	assert.Contains(t, result.Merged, "gold")
	assert.Contains(t, result.Merged, "wood")
}

func TestMergeAndInitialize_SkipsUndecodableLocalValue(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "client.db")

	store, err := boltdb.New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, models.CollectionCurrencies, newCurrencyEntry(t, "gold", 100, 10)))
	require.NoError(t, store.Close())

	// Поврежденное значение записываем в bucket напрямую
	raw, err := bbolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	err = raw.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte("records")).Bucket([]byte(models.CollectionCurrencies))
		return bucket.Put([]byte("wood"), []byte(`{not json`))
	})
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	store, err = boltdb.New(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()

	result, err := MergeAndInitialize(ctx, models.CollectionCurrencies, store, newRemoteWith(), testLogger())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Merged, 1)
	assert.Equal(t, float64(100), decodeAmount(t, result.Merged["gold"]))
	assert.NotContains(t, result.Merged, "wood")
}

func TestMergeAndInitialize_LocalErrors(t *testing.T) {
	t.Run("load failure", func(t *testing.T) {
		local := &storage.RecordStorageMock{
			LoadAllFunc: func(ctx context.Context, collection string) ([]*models.Entry, error) {
				return nil, storage.ErrStorageClosed
			},
		}

		_, err := MergeAndInitialize(context.Background(), models.CollectionCurrencies, local, newRemoteWith(), testLogger())
		assert.ErrorIs(t, err, storage.ErrStorageClosed)
	})

	t.Run("save failure", func(t *testing.T) {
		local := newLocalWith()
		local.SaveFunc = func(ctx context.Context, collection string, entry *models.Entry) error {
			return errors.New("disk full")
		}

		_, err := MergeAndInitialize(context.Background(), models.CollectionCurrencies, local,
			newRemoteWith(newCurrencyEntry(t, "gold", 1, 1)), testLogger())
		assert.ErrorContains(t, err, "disk full")
	})
}
