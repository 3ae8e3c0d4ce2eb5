package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastSyncTimestamp saves the timestamp of the last successful remote commit
	SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error

	// GetLastSyncTimestamp retrieves the timestamp of the last successful remote commit
	// Returns 0 if no sync has been performed yet
	GetLastSyncTimestamp(ctx context.Context) (int64, error)

	// SaveClockOffset saves the estimated server clock offset (seconds)
	SaveClockOffset(ctx context.Context, offset int64) error

	// GetClockOffset returns the last estimated clock offset
	// Returns 0 if offset was never estimated
	GetClockOffset(ctx context.Context) (int64, error)
}
