// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps documents in a two column table (id, doc jsonb) named
// after the collection. The database is the one named in the URI.
type PostgresStore struct {
	// pgx.Conn is not safe for concurrent use, every access holds lock.
	conn  *pgx.Conn
	lock  sync.Mutex
	table string
}

func OpenPostgres(ctx context.Context, cfg Config, timeout time.Duration) (*PostgresStore, error) {
	pgcfg, err := pgx.ParseConfig(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres uri: %w", err)
	}
	pgcfg.ConnectTimeout = timeout

	conn, err := pgx.ConnectConfig(ctx, pgcfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	s := &PostgresStore{conn: conn, table: pgx.Identifier{cfg.Collection}.Sanitize()}
	q := "CREATE TABLE IF NOT EXISTS " + s.table + " (id TEXT PRIMARY KEY, doc JSONB NOT NULL)"
	if _, err := conn.Exec(ctx, q); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("creating table %s: %w", s.table, err)
	}
	return s, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, id string, doc json.RawMessage) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	q := "INSERT INTO " + s.table + " (id, doc) VALUES ($1, $2::jsonb) " +
		"ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc"
	if _, err := s.conn.Exec(ctx, q, id, string(doc)); err != nil {
		return fmt.Errorf("upserting %q: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (json.RawMessage, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var doc []byte
	err := s.conn.QueryRow(ctx, "SELECT doc FROM "+s.table+" WHERE id = $1", id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", id, err)
	}
	return doc, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	rows, err := s.conn.Query(ctx, "SELECT id FROM "+s.table+` ORDER BY id COLLATE "C"`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return ids, nil
}

func (s *PostgresStore) Close(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.conn.Close(ctx)
}
