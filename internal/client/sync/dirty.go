package sync

import (
	"sync"

	"github.com/iudanet/progresskeeper/internal/models"
)

// dirtyTracker хранит записи, сохраненные локально, но еще не
// подтвержденные удаленным хранилищем, и счетчик циклов локального сброса.
type dirtyTracker struct {
	items           map[models.Key]*models.Entry
	mu              sync.Mutex
	localFlushCount int
}

func newDirtyTracker() *dirtyTracker {
	return &dirtyTracker{items: make(map[models.Key]*models.Entry)}
}

// put добавляет или заменяет запись.
func (d *dirtyTracker) put(entry *models.Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.items[entry.Key()] = entry
}

// markFlushed отмечает завершенный цикл локального сброса и возвращает
// количество циклов с момента последней попытки удаленного коммита.
func (d *dirtyTracker) markFlushed() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.localFlushCount++
	return d.localFlushCount
}

// takeSnapshot атомарно забирает все записи и сбрасывает счетчик циклов.
// Пустой трекер не меняется.
func (d *dirtyTracker) takeSnapshot() map[models.Key]*models.Entry {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.items) == 0 {
		return nil
	}

	snapshot := d.items
	d.items = make(map[models.Key]*models.Entry)
	d.localFlushCount = 0

	return snapshot
}

// restore возвращает записи неудачного коммита. Ключ восстанавливается,
// только если в трекере нет более новой записи и superseded не сообщает
// о более новой версии в ожидании локального сброса.
func (d *dirtyTracker) restore(snapshot map[models.Key]*models.Entry, superseded func(models.Key) bool) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	restored := 0
	for key, entry := range snapshot {
		if _, exists := d.items[key]; exists {
			continue
		}
		if superseded != nil && superseded(key) {
			continue
		}
		d.items[key] = entry
		restored++
	}

	return restored
}

func (d *dirtyTracker) get(key models.Key) (*models.Entry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, ok := d.items[key]
	return entry, ok
}

func (d *dirtyTracker) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.items)
}

func (d *dirtyTracker) flushCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.localFlushCount
}
