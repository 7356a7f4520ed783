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
	"sort"
	"time"

	"github.com/gomodule/redigo/redis"
)

// RedisStore keeps every document as a string value under
// "<database>:<collection>:<id>" and the ids in the set
// "<database>:<collection>".
type RedisStore struct {
	pool   *redis.Pool
	prefix string
}

func OpenRedis(ctx context.Context, cfg Config, timeout time.Duration) (*RedisStore, error) {
	uri := cfg.URI
	pool := &redis.Pool{
		MaxIdle:     2,
		IdleTimeout: 5 * time.Minute,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialURLContext(ctx, uri, redis.DialConnectTimeout(timeout))
		},
	}

	s := &RedisStore{pool: pool, prefix: cfg.Database + ":" + cfg.Collection}
	conn, err := pool.GetContext(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	defer conn.Close()
	if _, err := conn.Do("PING"); err != nil {
		pool.Close()
		return nil, fmt.Errorf("reaching redis: %w", err)
	}
	return s, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}

func (s *RedisStore) Upsert(ctx context.Context, id string, doc json.RawMessage) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("upserting %q: %w", id, err)
	}
	defer conn.Close()

	if err := conn.Send("MULTI"); err != nil {
		return fmt.Errorf("upserting %q: %w", id, err)
	}
	if err := conn.Send("SET", s.key(id), []byte(doc)); err != nil {
		return fmt.Errorf("upserting %q: %w", id, err)
	}
	if err := conn.Send("SADD", s.prefix, id); err != nil {
		return fmt.Errorf("upserting %q: %w", id, err)
	}

	// Errors of queued commands are elements of the EXEC reply.
	replies, err := redis.Values(conn.Do("EXEC"))
	if err != nil {
		return fmt.Errorf("upserting %q: %w", id, err)
	}
	for _, r := range replies {
		if rerr, ok := r.(redis.Error); ok {
			return fmt.Errorf("upserting %q: %w", id, rerr)
		}
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (json.RawMessage, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", id, err)
	}
	defer conn.Close()

	doc, err := redis.Bytes(conn.Do("GET", s.key(id)))
	switch {
	case errors.Is(err, redis.ErrNil):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("reading %q: %w", id, err)
	}
	return doc, nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer conn.Close()

	ids, err := redis.Strings(conn.Do("SMEMBERS", s.prefix))
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *RedisStore) Close(ctx context.Context) error {
	return s.pool.Close()
}
