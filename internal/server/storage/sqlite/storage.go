package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/iudanet/progresskeeper/internal/server/storage"
)

var (
	_ storage.UserStorage     = (*Storage)(nil)
	_ storage.DocumentStorage = (*Storage)(nil)
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// pragmas применяются к единственному соединению пула.
// Батч документов пишется одной транзакцией, поэтому одного писателя достаточно,
// а busy_timeout покрывает чтение коллекций во время коммита.
var pragmas = []string{
	"PRAGMA journal_mode = WAL;", // для ":memory:" SQLite оставляет режим memory
	"PRAGMA synchronous = NORMAL;",
	"PRAGMA foreign_keys = ON;", // documents.user_id ссылается на users
	"PRAGMA busy_timeout = 5000;",
}

// Storage хранит пользователей и документы прогресса в SQLite.
type Storage struct {
	db *sql.DB
}

// New открывает базу по dbPath (":memory:" для тестов), настраивает
// соединение и применяет встроенные миграции.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Одно соединение: для ":memory:" каждое новое соединение - отдельная пустая база
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set %q: %w", pragma, err)
		}
	}

	store := &Storage{db: db}

	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// PingContext проверяет доступность базы для health check.
func (s *Storage) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate применяет миграции через goose provider без глобального состояния goose,
// поэтому несколько хранилищ можно открывать параллельно.
func (s *Storage) migrate(ctx context.Context) error {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// DB returns the underlying connection; tests use it to inspect the schema.
func (s *Storage) DB() *sql.DB {
	return s.db
}
