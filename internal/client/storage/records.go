package storage

import (
	"context"

	"github.com/iudanet/progresskeeper/internal/models"
)

//go:generate moq -out recordstorage_mock.go . RecordStorage

// RecordStorage defines interface for storing progress records on client.
// Records are grouped by collection; an ID is unique within its collection.
type RecordStorage interface {
	// Save stores or replaces a record (whole-record overwrite)
	Save(ctx context.Context, collection string, entry *models.Entry) error

	// Get retrieves a record by collection and ID
	// Returns ErrEntryNotFound if record doesn't exist
	Get(ctx context.Context, collection, id string) (*models.Entry, error)

	// LoadAll returns all records of the collection.
	// Returns an empty slice for an unknown collection.
	// Undecodable records come back with an empty payload and fail Entry.Validate.
	LoadAll(ctx context.Context, collection string) ([]*models.Entry, error)
}
