// Package storage is the client-side local store: the persisted session
// token (the localStorage analog) and the last good dashboard payload. The
// backend remains the only authoritative copy of finance data.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveToken upserts the single persisted session token.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, token, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at`,
		token, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// LoadToken returns the persisted token, or empty when none is stored.
func (s *Store) LoadToken(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM session WHERE id = 1`).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

func (s *Store) DeleteToken(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// SaveDashboard upserts the last good dashboard payload.
func (s *Store) SaveDashboard(ctx context.Context, payload []byte, fetchedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dashboard_cache (id, payload, fetched_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		payload, fetchedAt.UTC())
	if err != nil {
		return fmt.Errorf("save dashboard: %w", err)
	}
	return nil
}

// LoadDashboard returns the cached payload and its fetch time, or a nil
// payload when nothing is cached yet.
func (s *Store) LoadDashboard(ctx context.Context) ([]byte, time.Time, error) {
	var (
		payload   []byte
		fetchedAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM dashboard_cache WHERE id = 1`).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load dashboard: %w", err)
	}
	return payload, fetchedAt, nil
}
