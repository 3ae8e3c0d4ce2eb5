package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/progresskeeper/internal/client/storage"
	"github.com/iudanet/progresskeeper/internal/models"
)

// Save stores or replaces a record in the collection bucket
func (s *Storage) Save(ctx context.Context, collection string, entry *models.Entry) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	if err := entry.Validate(collection); err != nil {
		return err
	}

	// Сериализуем entry в JSON
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		records := tx.Bucket(bucketRecords)
		if records == nil {
			return fmt.Errorf("records bucket not found")
		}

		bucket, err := records.CreateBucketIfNotExists([]byte(collection))
		if err != nil {
			return fmt.Errorf("failed to create collection bucket: %w", err)
		}

		// Сохраняем по ключу ID, запись перезаписывается целиком
		if err := bucket.Put([]byte(entry.ID), data); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// Get retrieves a record by collection and ID
func (s *Storage) Get(ctx context.Context, collection, id string) (*models.Entry, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var entry *models.Entry

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := collectionBucket(tx, collection)
		if bucket == nil {
			return storage.ErrEntryNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrEntryNotFound
		}

		// Десериализуем
		entry = &models.Entry{}
		if err := json.Unmarshal(data, entry); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return entry, nil
}

// LoadAll returns all records of the collection.
// A value that cannot be decoded is returned as an entry with an empty payload
// so that callers skip it instead of failing the whole collection.
func (s *Storage) LoadAll(ctx context.Context, collection string) ([]*models.Entry, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	entries := []*models.Entry{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := collectionBucket(tx, collection)
		if bucket == nil {
			// Нет bucket - возвращаем пустой массив
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var entry models.Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				// Неразбираемое значение отдаем без payload: Validate его отклонит,
				// а вызывающий пропустит запись с предупреждением
				entries = append(entries, &models.Entry{
					Collection: collection,
					ID:         string(k),
				})
				return nil
			}
			entries = append(entries, &entry)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", collection, err)
	}

	return entries, nil
}

func collectionBucket(tx *bbolt.Tx, collection string) *bbolt.Bucket {
	records := tx.Bucket(bucketRecords)
	if records == nil {
		return nil
	}
	return records.Bucket([]byte(collection))
}
