package sync

import (
	"context"
	"sync"

	"github.com/iudanet/progresskeeper/internal/models"
)

// LocalSaver сохраняет запись в локальное хранилище.
// storage.RecordStorage удовлетворяет этому интерфейсу.
type LocalSaver interface {
	Save(ctx context.Context, collection string, entry *models.Entry) error
}

type pendingItem struct {
	entry *models.Entry
	saver LocalSaver
}

// pendingBuffer хранит записи, еще не сохраненные локально.
// Повторная запись того же ключа заменяет предыдущую.
type pendingBuffer struct {
	items map[models.Key]pendingItem
	mu    sync.Mutex
}

func newPendingBuffer() *pendingBuffer {
	return &pendingBuffer{items: make(map[models.Key]pendingItem)}
}

func (b *pendingBuffer) put(entry *models.Entry, saver LocalSaver) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items[entry.Key()] = pendingItem{entry: entry, saver: saver}
}

// takeSnapshot атомарно подменяет буфер пустым и возвращает прежнее содержимое.
func (b *pendingBuffer) takeSnapshot() map[models.Key]pendingItem {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.items) == 0 {
		return nil
	}

	snapshot := b.items
	b.items = make(map[models.Key]pendingItem)

	return snapshot
}

func (b *pendingBuffer) has(key models.Key) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.items[key]
	return ok
}

func (b *pendingBuffer) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.items)
}
