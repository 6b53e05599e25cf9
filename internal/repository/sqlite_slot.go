package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/mapty/internal/db"
)

// SQLiteSlotRepo implements SlotRepo using a SQLite database.
type SQLiteSlotRepo struct {
	db db.DBTX
}

// NewSQLiteSlotRepo creates a new SQLiteSlotRepo.
func NewSQLiteSlotRepo(conn db.DBTX) *SQLiteSlotRepo {
	return &SQLiteSlotRepo{db: conn}
}

func (r *SQLiteSlotRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("slot %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading slot %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteSlotRepo) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO slots (key, value, updated_at, generation) VALUES (?, ?, ?, 1)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at,
			generation = slots.generation + 1`
	_, err := r.db.ExecContext(ctx, query, key, value, nowUTC())
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteSlotRepo) Remove(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("removing slot %q: %w", key, err)
	}
	return nil
}

// SlotInfo describes when and how often a slot was written.
type SlotInfo struct {
	Key   string
	Bytes int
	// Generation counts overwrites since creation; zero when the backend
	// does not track it.
	Generation int
	UpdatedAt  time.Time
}

// Info reports metadata for key without returning its value.
func (r *SQLiteSlotRepo) Info(ctx context.Context, key string) (*SlotInfo, error) {
	var info SlotInfo
	var updatedAtStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT key, length(value), generation, updated_at FROM slots WHERE key = ?`, key,
	).Scan(&info.Key, &info.Bytes, &info.Generation, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("slot %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning slot info: %w", err)
	}
	info.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &info, nil
}
