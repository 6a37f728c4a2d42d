// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Compile-time contract assertion.
var _ Store = (*SQLiteStore)(nil)

// # SQLite Snapshot Backend

// SQLiteStore serves reads and writes from memory and persists the whole
// state to a single SQLite file after every successful unit of work.
//
// Each table is stored as one JSON payload keyed by bucket name. The snapshot
// is written before the in-memory state is swapped, so a failed write leaves
// both copies on the previous version.
type SQLiteStore struct {
	*MemoryStore
	db   *sql.DB
	path string
}

// sqliteBuckets lists every persisted bucket in write order.
var sqliteBuckets = []string{
	"pokemon", "categories", "owners", "countries",
	"reviews", "reviewers", "pokemon_categories", "pokemon_owners",
}

// NewSQLiteStore opens (or creates) the database at path and loads any
// previously persisted state.
func NewSQLiteStore(context context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		path = "pokereview.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("store: create dirs: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}

	if _, err := db.ExecContext(context, `CREATE TABLE IF NOT EXISTS state (
		bucket  TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create state table: %w", err)
	}

	s := &SQLiteStore{MemoryStore: NewMemoryStore(), db: db, path: path}
	if err := s.load(context); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.MemoryStore.afterCommit = s.persist
	return s, nil
}

// Ping implements [Store].
func (s *SQLiteStore) Ping(context context.Context) error {
	return s.db.PingContext(context)
}

// Close implements [Store].
func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string { return s.path }

// bucketTargets maps bucket names onto the snapshot fields they hold.
func bucketTargets(snapshot *Snapshot) map[string]any {
	return map[string]any{
		"pokemon":            &snapshot.Pokemon,
		"categories":         &snapshot.Categories,
		"owners":             &snapshot.Owners,
		"countries":          &snapshot.Countries,
		"reviews":            &snapshot.Reviews,
		"reviewers":          &snapshot.Reviewers,
		"pokemon_categories": &snapshot.PokemonCategories,
		"pokemon_owners":     &snapshot.PokemonOwners,
	}
}

func (s *SQLiteStore) load(context context.Context) error {
	rows, err := s.db.QueryContext(context, `SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("store: select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshot Snapshot
	targets := bucketTargets(&snapshot)
	found := false

	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("store: scan state: %w", err)
		}

		target, ok := targets[bucket]
		if !ok {
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return fmt.Errorf("store: decode %s: %w", bucket, err)
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("store: read state: %w", err)
	}

	if found {
		s.ImportState(snapshot)
	}
	return nil
}

func (s *SQLiteStore) persist(context context.Context, snapshot Snapshot) (retErr error) {
	tx, err := s.db.BeginTx(context, nil)
	if err != nil {
		return fmt.Errorf("store: begin snapshot: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	targets := bucketTargets(&snapshot)
	for _, bucket := range sqliteBuckets {
		data, err := json.Marshal(targets[bucket])
		if err != nil {
			return fmt.Errorf("store: encode %s: %w", bucket, err)
		}
		if _, err := tx.ExecContext(context,
			`INSERT INTO state(bucket, payload) VALUES(?, ?) ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
			bucket, data); err != nil {
			return fmt.Errorf("store: upsert %s: %w", bucket, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit snapshot: %w", err)
	}
	return nil
}
