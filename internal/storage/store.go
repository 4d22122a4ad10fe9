// Package storage persists the client-side tip state in SQLite: the current
// daily tip choice and previously fetched expansions.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"budgetapp/internal/core"

	_ "modernc.org/sqlite"
)

type ClientStore struct {
	db *sql.DB
}

func NewClientStore(dbPath string) (*ClientStore, error) {
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

	return &ClientStore{db: db}, nil
}

func (s *ClientStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DailyTip returns the persisted daily tip record, if any.
func (s *ClientStore) DailyTip(ctx context.Context) (date, tipID string, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT date, tip_id FROM daily_tip WHERE id = 1`)
	if err := row.Scan(&date, &tipID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", false, nil
		}
		return "", "", false, fmt.Errorf("read daily tip: %w", err)
	}
	return date, tipID, true, nil
}

// SetDailyTip records the tip chosen for the given day, replacing any
// previous record.
func (s *ClientStore) SetDailyTip(ctx context.Context, date, tipID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_tip (id, date, tip_id) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET date = excluded.date, tip_id = excluded.tip_id`,
		date, tipID)
	if err != nil {
		return fmt.Errorf("save daily tip: %w", err)
	}
	return nil
}

// Expansion loads a cached expansion by tip id. A row whose payload no
// longer parses is treated as a miss rather than an error.
func (s *ClientStore) Expansion(ctx context.Context, tipID string) (*core.Expansion, bool, error) {
	var payload string
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM expansions WHERE tip_id = ?`, tipID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read expansion: %w", err)
	}

	var exp core.Expansion
	if err := json.Unmarshal([]byte(payload), &exp); err != nil {
		return nil, false, nil
	}
	return &exp, true, nil
}

// PutExpansion persists an expansion, replacing any earlier one for the
// same tip.
func (s *ClientStore) PutExpansion(ctx context.Context, exp *core.Expansion) error {
	payload, err := json.Marshal(exp)
	if err != nil {
		return fmt.Errorf("encode expansion: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO expansions (tip_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(tip_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		exp.TipID, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save expansion: %w", err)
	}
	return nil
}
