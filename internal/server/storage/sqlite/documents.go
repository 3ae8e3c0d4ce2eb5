package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iudanet/progresskeeper/internal/models"
)

// CommitBatch writes all entries in one transaction.
// Документ перезаписывается целиком, как batch.Set.
func (s *Storage) CommitBatch(ctx context.Context, userID string, entries []*models.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO documents (user_id, collection, id, payload, last_modified, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, collection, id) DO UPDATE SET
			payload = excluded.payload,
			last_modified = excluded.last_modified,
			updated_at = excluded.updated_at
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	now := time.Now().Unix()
	for _, entry := range entries {
		if _, err := stmt.ExecContext(ctx,
			userID,
			entry.Collection,
			entry.ID,
			[]byte(entry.Payload),
			entry.LastModified,
			now,
		); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", entry.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(entries), nil
}

// GetCollection returns all documents of a user collection
func (s *Storage) GetCollection(ctx context.Context, userID, collection string) ([]*models.Entry, error) {
	query := `
		SELECT collection, id, payload, last_modified
		FROM documents
		WHERE user_id = ? AND collection = ?
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, userID, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*models.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// StampServerTime пишет служебную запись со временем базы и читает ее обратно
func (s *Storage) StampServerTime(ctx context.Context, userID string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	upsert := `
		INSERT INTO server_time (user_id, stamped_at)
		VALUES (?, CAST(strftime('%s', 'now') AS INTEGER))
		ON CONFLICT (user_id) DO UPDATE SET stamped_at = excluded.stamped_at
	`
	if _, err := tx.ExecContext(ctx, upsert, userID); err != nil {
		return 0, fmt.Errorf("failed to stamp server time: %w", err)
	}

	var stampedAt int64
	err = tx.QueryRowContext(ctx, `SELECT stamped_at FROM server_time WHERE user_id = ?`, userID).Scan(&stampedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to read server time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return stampedAt, nil
}

// scanEntry сканирует строку результата в Entry
func scanEntry(rows *sql.Rows) (*models.Entry, error) {
	var (
		entry   models.Entry
		payload []byte
	)

	if err := rows.Scan(&entry.Collection, &entry.ID, &payload, &entry.LastModified); err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	entry.Payload = payload

	return &entry, nil
}
