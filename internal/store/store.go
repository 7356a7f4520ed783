// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package store provides document store backends for the schema registry.
// A Store addresses one collection of one database. Documents travel as
// canonical JSON and are replaced as a whole, never merged.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	KindMemory   = "memory"
	KindMongo    = "mongodb"
	KindPostgres = "postgres"
	KindRedis    = "redis"
	KindBadger   = "badger"
)

const (
	DefaultMongoURI   = "mongodb://localhost:27017/supremm"
	DefaultRedisURI   = "redis://localhost:6379"
	DefaultDatabase   = "supremm"
	DefaultCollection = "schema"
	DefaultTimeout    = "10s"
)

var (
	ErrNotFound       = errors.New("document not found")
	ErrUnknownBackend = errors.New("unknown store kind")
)

// Store is a collection of JSON documents keyed by id.
type Store interface {
	// Upsert replaces the document stored under id with doc, or inserts doc
	// if id is absent.
	Upsert(ctx context.Context, id string, doc json.RawMessage) error

	// Get returns the document stored under id or ErrNotFound.
	Get(ctx context.Context, id string) (json.RawMessage, error)

	// List returns all ids in lexical order.
	List(ctx context.Context) ([]string, error)

	Close(ctx context.Context) error
}

type Config struct {
	// One of memory, mongodb, postgres, redis or badger.
	Kind string `json:"kind"`

	// Connection string of the server, unused by memory and badger.
	URI string `json:"uri"`

	// Database name. For mongodb it defaults to the database of the URI.
	Database string `json:"database"`

	// Collection (table, key prefix) holding the schema documents.
	Collection string `json:"collection"`

	// Directory of the badger database. Empty keeps it in memory.
	Path string `json:"path"`

	// Timeout for establishing the connection, for example "10s".
	Timeout string `json:"timeout"`
}

// WithDefaults fills in every unset field.
func (c Config) WithDefaults() Config {
	if c.Kind == "" {
		c.Kind = KindMongo
	}
	if c.URI == "" {
		switch c.Kind {
		case KindMongo:
			c.URI = DefaultMongoURI
		case KindRedis:
			c.URI = DefaultRedisURI
		}
	}
	if c.Database == "" && c.Kind != KindMongo {
		c.Database = DefaultDatabase
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.Timeout == "" {
		c.Timeout = DefaultTimeout
	}
	return c
}

func (c Config) ConnectTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parsing store timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// Open connects to the backend selected by cfg.Kind. Backends that talk to
// a server verify it is reachable before returning.
func Open(ctx context.Context, cfg Config) (Store, error) {
	cfg = cfg.WithDefaults()
	timeout, err := cfg.ConnectTimeout()
	if err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case KindMemory:
		return NewMemoryStore(), nil
	case KindMongo:
		return OpenMongo(ctx, cfg, timeout)
	case KindPostgres:
		return OpenPostgres(ctx, cfg, timeout)
	case KindRedis:
		return OpenRedis(ctx, cfg, timeout)
	case KindBadger:
		return OpenBadger(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Kind)
	}
}
