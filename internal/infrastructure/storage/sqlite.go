package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vitos/coingecko_coins/internal/domain"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			run_id TEXT PRIMARY KEY,
			base_url TEXT NOT NULL,
			total INTEGER NOT NULL,
			fetched_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snapshot_coins (
			run_id TEXT NOT NULL REFERENCES snapshots(run_id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			coin_id TEXT NOT NULL,
			symbol TEXT NOT NULL,
			name TEXT NOT NULL,
			platforms TEXT,
			PRIMARY KEY (run_id, coin_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_fetched_at ON snapshots(fetched_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to exec query %s: %w", q, err)
		}
	}
	return nil
}

// SnapshotRepository Implementation

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (run_id, base_url, total, fetched_at) VALUES (?, ?, ?, ?)`,
		snap.RunID, snap.BaseURL, snap.Total, snap.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snap.RunID, err)
	}

	for _, row := range snap.Rows {
		var platforms []byte
		if row.Coin.Platforms != nil {
			if platforms, err = json.Marshal(row.Coin.Platforms); err != nil {
				return err
			}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO snapshot_coins (run_id, position, coin_id, symbol, name, platforms) VALUES (?, ?, ?, ?, ?, ?)`,
			snap.RunID, row.Index, row.Coin.ID, row.Coin.Symbol, row.Coin.Name, platforms)
		if err != nil {
			return fmt.Errorf("failed to save coin %s: %w", row.Coin.ID, err)
		}
	}

	return tx.Commit()
}

// ListSnapshots returns the latest runs without their rows.
func (s *SQLiteStore) ListSnapshots(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	query := `SELECT run_id, base_url, total, fetched_at FROM snapshots ORDER BY fetched_at DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*domain.Snapshot
	for rows.Next() {
		var snap domain.Snapshot
		if err := rows.Scan(&snap.RunID, &snap.BaseURL, &snap.Total, &snap.FetchedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, &snap)
	}
	return snaps, rows.Err()
}

func (s *SQLiteStore) GetSnapshot(ctx context.Context, runID string) (*domain.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, base_url, total, fetched_at FROM snapshots WHERE run_id = ?`, runID)

	var snap domain.Snapshot
	if err := row.Scan(&snap.RunID, &snap.BaseURL, &snap.Total, &snap.FetchedAt); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, coin_id, symbol, name, platforms FROM snapshot_coins WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r domain.CoinRow
		var platforms sql.NullString
		if err := rows.Scan(&r.Index, &r.Coin.ID, &r.Coin.Symbol, &r.Coin.Name, &platforms); err != nil {
			return nil, err
		}
		if platforms.Valid && platforms.String != "" {
			if err := json.Unmarshal([]byte(platforms.String), &r.Coin.Platforms); err != nil {
				return nil, fmt.Errorf("corrupt platforms for %s: %w", r.Coin.ID, err)
			}
		}
		snap.Rows = append(snap.Rows, r)
	}
	return &snap, rows.Err()
}
