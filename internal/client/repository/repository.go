// Package repository содержит типизированные репозитории прогресса игрока.
// Каждое изменение штампуется временем с поправкой на смещение часов и
// передается координатору синхронизации.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/iudanet/progresskeeper/internal/client/storage"
	syncer "github.com/iudanet/progresskeeper/internal/client/sync"
	"github.com/iudanet/progresskeeper/internal/models"
)

// Registrar принимает измененные записи для отложенного сохранения.
// *syncer.Coordinator удовлетворяет этому интерфейсу.
type Registrar interface {
	RegisterPending(collection string, item models.Record, local syncer.LocalSaver)
}

// Repository хранит записи одной коллекции в памяти и отправляет
// изменения через Registrar.
type Repository[T models.Record] struct {
	local      storage.RecordStorage
	registrar  Registrar
	logger     *slog.Logger
	newRecord  func() T
	items      map[string]T
	collection string
	mu         sync.RWMutex
}

// New создает репозиторий коллекции. newRecord возвращает пустую запись для декодирования.
func New[T models.Record](
	collection string,
	local storage.RecordStorage,
	registrar Registrar,
	newRecord func() T,
	logger *slog.Logger,
) *Repository[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Repository[T]{
		local:      local,
		registrar:  registrar,
		logger:     logger,
		newRecord:  newRecord,
		items:      make(map[string]T),
		collection: collection,
	}
}

// Collection возвращает имя коллекции.
func (r *Repository[T]) Collection() string {
	return r.collection
}

// Initialize загружает коллекцию из локального хранилища.
// Некорректные записи пропускаются с предупреждением.
func (r *Repository[T]) Initialize(ctx context.Context) error {
	entries, err := r.local.LoadAll(ctx, r.collection)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", r.collection, err)
	}

	items := make(map[string]T, len(entries))
	for _, entry := range entries {
		rec := r.newRecord()
		if err := entry.Decode(rec); err != nil {
			r.logger.Warn("Skipping malformed record",
				"collection", r.collection,
				"id", entry.ID,
				"error", err)
			continue
		}
		items[rec.GetID()] = rec
	}

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()

	r.logger.Debug("Repository initialized", "collection", r.collection, "count", len(items))

	return nil
}

// Get возвращает запись по ID.
func (r *Repository[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok
}

// All возвращает все записи, отсортированные по ID.
func (r *Repository[T]) All() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]T, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].GetID() < result[j].GetID()
	})

	return result
}

// Len возвращает количество записей.
func (r *Repository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// Save заменяет запись целиком и регистрирует ее для синхронизации.
// LastModified проставляется координатором.
func (r *Repository[T]) Save(item T) {
	r.registrar.RegisterPending(r.collection, item, r.local)

	r.mu.Lock()
	r.items[item.GetID()] = item
	r.mu.Unlock()
}
