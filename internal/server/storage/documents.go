package storage

import (
	"context"

	"github.com/iudanet/progresskeeper/internal/models"
)

// DocumentStorage defines interface for per-user progress documents
// (users/{user}/{collection}/{id}).
type DocumentStorage interface {
	// CommitBatch writes all entries in one transaction: either all of them
	// are applied or none. Existing documents are overwritten as a whole.
	// Returns the number of written documents.
	CommitBatch(ctx context.Context, userID string, entries []*models.Entry) (int, error)

	// GetCollection returns all documents of a user collection.
	// Returns empty slice if collection is empty
	GetCollection(ctx context.Context, userID, collection string) ([]*models.Entry, error)

	// StampServerTime writes the current database time into the user's
	// sentinel row and returns the stored value (unix seconds).
	StampServerTime(ctx context.Context, userID string) (int64, error)
}
