// Package sync implements the offline-first synchronization engine:
// debounced local persistence, dirty tracking and batched remote commits.
package sync

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/progresskeeper/internal/client/remote"
	"github.com/iudanet/progresskeeper/internal/models"
)

const (
	// DefaultDebounce пауза без новых записей перед локальным сбросом
	DefaultDebounce = time.Second
	// DefaultThreshold количество циклов локального сброса до удаленного коммита
	DefaultThreshold = 5
	// DefaultCommitTimeout ограничение на фоновый удаленный коммит
	DefaultCommitTimeout = 30 * time.Second
)

// Clock возвращает текущее время с поправкой на смещение часов (unix seconds).
type Clock interface {
	Now() int64
}

// Options настраивает Coordinator. Нулевые значения заменяются значениями по умолчанию.
type Options struct {
	Logger        *slog.Logger
	OnCommit      CommitHook
	Debounce      time.Duration
	CommitTimeout time.Duration
	Threshold     int
}

// Coordinator принимает локальные изменения записей, сохраняет их локально
// после паузы debounce и отправляет в удаленное хранилище пачками.
// Ни один метод не возвращает ошибки ввода-вывода: ошибки логируются,
// а записи остаются в dirty до следующей попытки.
type Coordinator struct {
	clock         Clock
	pending       *pendingBuffer
	dirty         *dirtyTracker
	flusher       *remoteFlusher
	debounce      *debouncer
	logger        *slog.Logger
	localMu       sync.Mutex // сериализует локальные сбросы
	commitTimeout time.Duration
	threshold     int
	disposed      atomic.Bool
}

// NewCoordinator creates a coordinator committing to store and stamping records with clock.
func NewCoordinator(store remote.BatchStore, clock Clock, opts Options) *Coordinator {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.CommitTimeout <= 0 {
		opts.CommitTimeout = DefaultCommitTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	c := &Coordinator{
		clock:         clock,
		pending:       newPendingBuffer(),
		dirty:         newDirtyTracker(),
		logger:        opts.Logger,
		commitTimeout: opts.CommitTimeout,
		threshold:     opts.Threshold,
	}

	c.flusher = &remoteFlusher{
		store:      store,
		dirty:      c.dirty,
		superseded: c.pending.has,
		onCommit:   opts.OnCommit,
		logger:     opts.Logger,
	}
	c.debounce = newDebouncer(opts.Debounce, c.onQuietPeriod)

	return c
}

// RegisterPending stamps item with the skew-corrected time, buffers it and
// restarts the debounce timer. The last call for a (collection, id) before
// a flush wins. Malformed records are logged and dropped.
func (c *Coordinator) RegisterPending(collection string, item models.Record, local LocalSaver) {
	if item == nil {
		c.logger.Warn("Dropping nil record", "collection", collection)
		return
	}

	item.SetLastModified(c.clock.Now())

	entry, err := models.NewEntry(collection, item)
	if err != nil {
		c.logger.Warn("Dropping malformed record", "collection", collection, "error", err)
		return
	}

	c.pending.put(entry, local)

	// После Dispose таймер не взводится, запись заберет ForceFlushAll
	c.debounce.restart()
}

// MarkDirty queues an already locally stored record for the next remote commit.
func (c *Coordinator) MarkDirty(entry *models.Entry) {
	if entry == nil {
		return
	}
	c.dirty.put(entry.Clone())
}

// ForceFlushAll cancels the debounce timer, saves all pending records locally
// and attempts a remote commit regardless of the threshold. If a commit is
// already in flight no second one is started; the dirty state is picked up
// by the next cycle. The commit is bounded by the commit timeout.
func (c *Coordinator) ForceFlushAll(ctx context.Context) {
	c.debounce.cancel()

	c.flushLocal(ctx)

	done, ok := c.flusher.begin()
	if !ok {
		c.logger.Debug("Remote sync already in progress, skipping forced commit")
		return
	}

	commitCtx, cancel := context.WithTimeout(ctx, c.commitTimeout)
	defer cancel()

	c.flusher.run(commitCtx, done)
}

// Dispose cancels the debounce timer. It does not flush.
func (c *Coordinator) Dispose() {
	if c.disposed.Swap(true) {
		return
	}
	c.debounce.stop()
}

// Wait blocks until the in-flight remote commit, if any, completes.
func (c *Coordinator) Wait(ctx context.Context) error {
	return c.flusher.wait(ctx)
}

// PendingCount returns the number of records waiting for the local flush.
func (c *Coordinator) PendingCount() int {
	return c.pending.len()
}

// DirtyCount returns the number of records waiting for the remote commit.
func (c *Coordinator) DirtyCount() int {
	return c.dirty.len()
}

// LocalFlushCount returns local flush cycles since the last remote commit attempt.
func (c *Coordinator) LocalFlushCount() int {
	return c.dirty.flushCount()
}

// InFlight reports whether a remote commit is running.
func (c *Coordinator) InFlight() bool {
	return c.flusher.inFlight()
}

// onQuietPeriod срабатывает по таймеру debounce.
func (c *Coordinator) onQuietPeriod() {
	cycles, flushed := c.flushLocal(context.Background())
	if !flushed || cycles < c.threshold {
		return
	}

	done, ok := c.flusher.begin()
	if !ok {
		c.logger.Debug("Remote sync already in progress", "local_flush_count", cycles)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.commitTimeout)
		defer cancel()

		c.flusher.run(ctx, done)
	}()
}

// flushLocal забирает снимок pending, сохраняет каждую запись локально и
// передает их в dirty. Возвращает счетчик циклов и признак того, что цикл был.
func (c *Coordinator) flushLocal(ctx context.Context) (int, bool) {
	c.localMu.Lock()
	defer c.localMu.Unlock()

	snapshot := c.pending.takeSnapshot()
	if len(snapshot) == 0 {
		return c.dirty.flushCount(), false
	}

	for key, item := range snapshot {
		if item.saver != nil {
			if err := item.saver.Save(ctx, key.Collection, item.entry); err != nil {
				// Запись все равно уходит в dirty и будет отправлена на сервер
				c.logger.Warn("Local save failed",
					"collection", key.Collection,
					"id", key.ID,
					"error", err)
			}
		}
		c.dirty.put(item.entry)
	}

	cycles := c.dirty.markFlushed()
	c.logger.Debug("Local flush completed", "count", len(snapshot), "local_flush_count", cycles)

	return cycles, true
}
