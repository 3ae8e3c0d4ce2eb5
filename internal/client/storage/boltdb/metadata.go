package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/progresskeeper/internal/client/storage"
)

const (
	keyLastSyncTimestamp = "last_sync_timestamp"
	keyClockOffset       = "clock_offset"
)

// SaveLastSyncTimestamp saves the timestamp of the last successful remote commit
func (s *Storage) SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error {
	return s.putInt64(keyLastSyncTimestamp, timestamp)
}

// GetLastSyncTimestamp retrieves the timestamp of the last successful remote commit
// Returns 0 if no sync has been performed yet
func (s *Storage) GetLastSyncTimestamp(ctx context.Context) (int64, error) {
	timestamp, err := s.getInt64(keyLastSyncTimestamp)
	if err != nil {
		return 0, fmt.Errorf("failed to get last sync timestamp: %w", err)
	}
	return timestamp, nil
}

// SaveClockOffset saves the estimated server clock offset
func (s *Storage) SaveClockOffset(ctx context.Context, offset int64) error {
	return s.putInt64(keyClockOffset, offset)
}

// GetClockOffset returns the last estimated clock offset
// Returns 0 if offset was never estimated
func (s *Storage) GetClockOffset(ctx context.Context) (int64, error) {
	offset, err := s.getInt64(keyClockOffset)
	if err != nil {
		return 0, fmt.Errorf("failed to get clock offset: %w", err)
	}
	return offset, nil
}

func (s *Storage) putInt64(key string, value int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Конвертируем int64 в bytes
		valueBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(valueBytes, uint64(value))

		if err := bucket.Put([]byte(key), valueBytes); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}

		return nil
	})
}

func (s *Storage) getInt64(key string) (int64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var value int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		valueBytes := bucket.Get([]byte(key))
		if valueBytes == nil {
			// Значение еще не сохранялось
			return nil
		}

		// Конвертируем bytes в int64
		value = int64(binary.BigEndian.Uint64(valueBytes))
		return nil
	})

	return value, err
}
