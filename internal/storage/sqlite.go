package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path.
func NewSQLite(ctx context.Context, path string) (Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	const sessionsTable = `
	CREATE TABLE IF NOT EXISTS sessions(
		id TEXT PRIMARY KEY,
		currentValue TEXT NOT NULL,
		updatedAt INTEGER NOT NULL
	);`

	if _, err := db.ExecContext(ctx, sessionsTable); err != nil {
		return err
	}
	return nil
}

func (s *sqliteStore) Save(ctx context.Context, id string, value float32) error {
	var q string = `
	INSERT INTO sessions (id, currentValue, updatedAt) VALUES ($1, $2, $3)
	ON CONFLICT(id) DO UPDATE SET currentValue = excluded.currentValue, updatedAt = excluded.updatedAt
	`
	_, err := s.db.ExecContext(ctx, q, id, encodeValue(value), time.Now().Unix())
	return err
}

func (s *sqliteStore) Load(ctx context.Context, id string) (float32, error) {
	var q string = `
	SELECT currentValue FROM sessions WHERE id = $1`

	var raw string
	if err := s.db.QueryRowContext(ctx, q, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return decodeValue(raw)
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	var q string = `
	DELETE FROM sessions WHERE id = $1`
	_, err := s.db.ExecContext(ctx, q, id)
	return err
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
