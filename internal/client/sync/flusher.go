package sync

import (
	"context"
	"log/slog"
	"sync"

	"github.com/iudanet/progresskeeper/internal/client/remote"
	"github.com/iudanet/progresskeeper/internal/models"
)

// CommitHook вызывается после успешного удаленного коммита.
type CommitHook func(ctx context.Context, committed int)

// remoteFlusher отправляет накопленные dirty записи одним батчем.
// Одновременно выполняется не более одного коммита.
type remoteFlusher struct {
	store      remote.BatchStore
	dirty      *dirtyTracker
	superseded func(models.Key) bool
	onCommit   CommitHook
	logger     *slog.Logger
	done       chan struct{} // не nil, пока коммит выполняется
	mu         sync.Mutex
}

// begin занимает слот коммита. Возвращает false, если коммит уже выполняется.
func (f *remoteFlusher) begin() (chan struct{}, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done != nil {
		return nil, false
	}

	f.done = make(chan struct{})
	return f.done, true
}

func (f *remoteFlusher) end(done chan struct{}) {
	f.mu.Lock()
	f.done = nil
	f.mu.Unlock()

	close(done)
}

// run выполняет коммит в занятом через begin слоте.
func (f *remoteFlusher) run(ctx context.Context, done chan struct{}) {
	defer f.end(done)

	// Забираем снимок и сбрасываем счетчик циклов
	snapshot := f.dirty.takeSnapshot()
	if len(snapshot) == 0 {
		return
	}

	batch := f.store.CreateBatch()
	for key, entry := range snapshot {
		batch.Stage(key.Collection, key.ID, entry)
	}

	if err := batch.Commit(ctx); err != nil {
		restored := f.dirty.restore(snapshot, f.superseded)
		f.logger.Warn("Remote sync failed, records kept for retry",
			"count", len(snapshot),
			"restored", restored,
			"error", err)
		return
	}

	f.logger.Info("Remote sync committed", "count", len(snapshot))

	if f.onCommit != nil {
		f.onCommit(ctx, len(snapshot))
	}
}

func (f *remoteFlusher) inFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.done != nil
}

// wait блокируется, пока выполняется текущий коммит.
func (f *remoteFlusher) wait(ctx context.Context) error {
	f.mu.Lock()
	done := f.done
	f.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
