package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/progresskeeper/internal/client/remote"
	"github.com/iudanet/progresskeeper/internal/client/storage"
	"github.com/iudanet/progresskeeper/internal/crdt"
	"github.com/iudanet/progresskeeper/internal/models"
)

// MergeResult результат слияния одной коллекции при запуске.
type MergeResult struct {
	Merged          map[string]*models.Entry // согласованный набор, уже сохраненный локально
	LocalWins       []*models.Entry          // записи, которые новее на клиенте и должны уйти на сервер
	Collection      string
	Skipped         int  // пропущенные некорректные записи
	RemoteAvailable bool // false, если удаленное хранилище не ответило
}

// MergeAndInitialize reconciles the local and remote snapshots of a collection
// by last-writer-wins and writes the merged set back to local storage.
// If the remote store is unavailable the local data is used as is.
// Malformed records on either side are skipped with a warning.
func MergeAndInitialize(
	ctx context.Context,
	collection string,
	local storage.RecordStorage,
	reader remote.CollectionReader,
	logger *slog.Logger,
) (*MergeResult, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result := &MergeResult{Collection: collection}

	localEntries, err := local.LoadAll(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to load local %s: %w", collection, err)
	}

	localSet := crdt.Index(validEntries(collection, localEntries, "local", logger, &result.Skipped))

	remoteEntries, err := reader.GetCollection(ctx, collection)
	if err != nil {
		logger.Warn("Remote collection unavailable, using local data only",
			"collection", collection,
			"error", err)
		result.Merged = localSet
		return result, nil
	}
	result.RemoteAvailable = true

	remoteSet := crdt.Index(validEntries(collection, remoteEntries, "remote", logger, &result.Skipped))

	result.Merged = crdt.Merge(localSet, remoteSet)

	// Локальное хранилище всегда содержит согласованное надмножество
	for _, entry := range result.Merged {
		if err := local.Save(ctx, collection, entry); err != nil {
			return nil, fmt.Errorf("failed to save merged %s/%s: %w", collection, entry.ID, err)
		}
	}

	for _, id := range crdt.LocalWins(localSet, remoteSet) {
		result.LocalWins = append(result.LocalWins, result.Merged[id])
	}

	logger.Info("Collection merged",
		"collection", collection,
		"local", len(localSet),
		"remote", len(remoteSet),
		"merged", len(result.Merged),
		"local_wins", len(result.LocalWins),
		"skipped", result.Skipped)

	return result, nil
}

func validEntries(collection string, entries []*models.Entry, side string, logger *slog.Logger, skipped *int) []*models.Entry {
	valid := make([]*models.Entry, 0, len(entries))

	for _, entry := range entries {
		if err := entry.Validate(collection); err != nil {
			logger.Warn("Skipping malformed record", "side", side, "error", err)
			*skipped++
			continue
		}
		valid = append(valid, entry)
	}

	return valid
}
