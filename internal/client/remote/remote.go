// Package remote describes the remote store capabilities consumed by the sync engine.
package remote

import (
	"context"
	"errors"

	"github.com/iudanet/progresskeeper/internal/crdt"
	"github.com/iudanet/progresskeeper/internal/models"
)

// ErrUnauthenticated возвращается, если у клиента нет действующей сессии.
// Движок синхронизации обрабатывает ее как обычную ошибку удаленного хранилища.
var ErrUnauthenticated = errors.New("remote: not authenticated")

//go:generate moq -out batch_mock.go . Batch BatchStore CollectionReader

// Batch накапливает записи и применяет их одним атомарным коммитом.
type Batch interface {
	// Stage добавляет запись в батч. Повторный Stage того же ключа заменяет запись.
	Stage(collection, id string, entry *models.Entry)

	// Commit отправляет все записи батча. Либо применяются все, либо ни одной.
	Commit(ctx context.Context) error
}

// BatchStore создает батчи записи.
type BatchStore interface {
	CreateBatch() Batch
}

// CollectionReader читает коллекцию целиком.
type CollectionReader interface {
	GetCollection(ctx context.Context, collection string) ([]*models.Entry, error)
}

// Store объединяет все возможности удаленного хранилища.
type Store interface {
	BatchStore
	CollectionReader
	crdt.ServerClock
}
