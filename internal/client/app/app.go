// Package app собирает клиент: локальное хранилище, сессию, часы с поправкой,
// слияние при запуске, координатор синхронизации и репозитории.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/progresskeeper/internal/client/api"
	"github.com/iudanet/progresskeeper/internal/client/auth"
	"github.com/iudanet/progresskeeper/internal/client/repository"
	"github.com/iudanet/progresskeeper/internal/client/storage"
	"github.com/iudanet/progresskeeper/internal/client/storage/boltdb"
	syncer "github.com/iudanet/progresskeeper/internal/client/sync"
	"github.com/iudanet/progresskeeper/internal/config"
	"github.com/iudanet/progresskeeper/internal/crdt"
	"github.com/iudanet/progresskeeper/internal/models"
)

// Collections синхронизируемые коллекции
var Collections = []string{models.CollectionCurrencies, models.CollectionUpgrades}

// App клиентское приложение с запущенным движком синхронизации.
type App struct {
	Currencies  *repository.Currencies
	Upgrades    *repository.Upgrades
	storage     *boltdb.Storage
	client      *api.Client
	auth        *auth.Service
	clock       *crdt.SkewClock
	coordinator *syncer.Coordinator
	session     *storage.AuthData
	logger      *slog.Logger
	merges      map[string]*syncer.MergeResult
}

// Status состояние клиента для команды status.
type Status struct {
	Counts          map[string]int
	UserID          string
	ClockOffset     int64
	LastSync        int64
	Pending         int
	Dirty           int
	LocalFlushCount int
	Online          bool
}

// Open открывает локальное хранилище и создает сервис авторизации без запуска синхронизации.
// Используется командами, которым не нужен движок (login, logout).
func Open(ctx context.Context, cfg config.Client, logger *slog.Logger) (*boltdb.Storage, *auth.Service, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	client := api.NewClient(cfg.ServerURL)
	return store, auth.NewService(client, store, logger), nil
}

// New запускает клиент: восстанавливает сессию, оценивает смещение часов,
// сливает локальные и удаленные коллекции и создает координатор.
// Недоступность сервера не является ошибкой: клиент работает с локальными данными.
func New(ctx context.Context, cfg config.Client, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a := &App{
		storage: store,
		client:  api.NewClient(cfg.ServerURL),
		clock:   crdt.NewSkewClock(),
		logger:  logger,
		merges:  make(map[string]*syncer.MergeResult, len(Collections)),
	}
	a.auth = auth.NewService(a.client, store, logger)

	if err := a.start(ctx, cfg); err != nil {
		_ = store.Close()
		return nil, err
	}

	return a, nil
}

func (a *App) start(ctx context.Context, cfg config.Client) error {
	session, err := a.auth.EnsureSession(ctx)
	if err != nil {
		a.logger.Warn("Sign in failed, working offline", "error", err)
	} else {
		a.session = session
	}

	offset := a.clock.Calibrate(ctx, a.client, a.logger)
	if err := a.storage.SaveClockOffset(ctx, offset); err != nil {
		return fmt.Errorf("failed to save clock offset: %w", err)
	}

	a.coordinator = syncer.NewCoordinator(a.client, a.clock, syncer.Options{
		Logger:        a.logger,
		Debounce:      cfg.Debounce,
		Threshold:     cfg.Threshold,
		CommitTimeout: cfg.CommitTimeout,
		OnCommit:      a.onCommit,
	})

	if err := a.mergeCollections(ctx); err != nil {
		return err
	}

	a.Currencies = repository.NewCurrencies(a.storage, a.coordinator, a.logger)
	a.Upgrades = repository.NewUpgrades(a.storage, a.coordinator, a.logger)

	if err := a.Currencies.Initialize(ctx); err != nil {
		return err
	}
	return a.Upgrades.Initialize(ctx)
}

// mergeCollections сливает коллекции параллельно и ставит локально более
// новые записи в очередь на отправку.
func (a *App) mergeCollections(ctx context.Context) error {
	results := make([]*syncer.MergeResult, len(Collections))

	g, gctx := errgroup.WithContext(ctx)
	for i, collection := range Collections {
		g.Go(func() error {
			result, err := syncer.MergeAndInitialize(gctx, collection, a.storage, a.client, a.logger)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("startup merge failed: %w", err)
	}

	for _, result := range results {
		a.merges[result.Collection] = result
		for _, entry := range result.LocalWins {
			a.coordinator.MarkDirty(entry)
		}
	}

	return nil
}

func (a *App) onCommit(ctx context.Context, committed int) {
	if err := a.storage.SaveLastSyncTimestamp(ctx, a.clock.Now()); err != nil {
		a.logger.Warn("Failed to save last sync timestamp", "error", err)
	}
}

// Coordinator возвращает координатор синхронизации.
func (a *App) Coordinator() *syncer.Coordinator {
	return a.coordinator
}

// Merge возвращает результат слияния коллекции при запуске.
func (a *App) Merge(collection string) (*syncer.MergeResult, bool) {
	result, ok := a.merges[collection]
	return result, ok
}

// Online сообщает, есть ли у клиента сессия на сервере.
func (a *App) Online() bool {
	return a.session != nil
}

// Sync принудительно сбрасывает все изменения и ждет завершения коммита.
// Если после этого остались dirty записи (коммит уже шел или не удался),
// сброс повторяется один раз.
func (a *App) Sync(ctx context.Context) error {
	if err := a.forceSync(ctx); err != nil {
		return err
	}

	if a.coordinator.DirtyCount() > 0 {
		return a.forceSync(ctx)
	}

	return nil
}

func (a *App) forceSync(ctx context.Context) error {
	a.coordinator.ForceFlushAll(ctx)

	if err := a.coordinator.Wait(ctx); err != nil {
		return fmt.Errorf("wait for remote sync: %w", err)
	}

	return nil
}

// Status возвращает состояние клиента.
func (a *App) Status(ctx context.Context) (*Status, error) {
	offset, err := a.storage.GetClockOffset(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get clock offset: %w", err)
	}

	lastSync, err := a.storage.GetLastSyncTimestamp(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get last sync: %w", err)
	}

	status := &Status{
		Counts: map[string]int{
			models.CollectionCurrencies: a.Currencies.Len(),
			models.CollectionUpgrades:   a.Upgrades.Len(),
		},
		ClockOffset:     offset,
		LastSync:        lastSync,
		Pending:         a.coordinator.PendingCount(),
		Dirty:           a.coordinator.DirtyCount(),
		LocalFlushCount: a.coordinator.LocalFlushCount(),
		Online:          a.Online(),
	}
	if a.session != nil {
		status.UserID = a.session.UserID
	}

	return status, nil
}

// Close сбрасывает все изменения, ждет коммит, останавливает таймер и закрывает хранилище.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.coordinator != nil {
		if err := a.Sync(ctx); err != nil {
			errs = append(errs, err)
		}

		a.coordinator.Dispose()

		if dirty := a.coordinator.DirtyCount(); dirty > 0 {
			a.logger.Warn("Records not synced with server, will retry on next start", "count", dirty)
		}
	}

	if err := a.storage.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}

	return errors.Join(errs...)
}
