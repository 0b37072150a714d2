package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const (
	createSessionTableQuery = `
		CREATE TABLE IF NOT EXISTS session_values (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	getSessionValueQuery = `SELECT value FROM session_values WHERE key = $1`
	setSessionValueQuery = `
		INSERT INTO session_values (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	deleteSessionValuesQuery = `DELETE FROM session_values WHERE key = ANY($1)`
	purgeSessionValuesQuery  = `DELETE FROM session_values WHERE updated_at < $1`
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the session_values table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSessionTableQuery); err != nil {
		return fmt.Errorf("create session_values: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, getSessionValueQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, setSessionValueQuery, key, value)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, deleteSessionValuesQuery, pq.Array(keys))
	return err
}

// Purge removes values not written since cutoff and returns how many went.
func (s *PostgresStore) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, purgeSessionValuesQuery, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
