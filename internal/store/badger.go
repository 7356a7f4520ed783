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

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/dgraph-io/badger/v3"
)

// BadgerStore keeps documents in an embedded badger database under the
// key "<collection>/<id>". It serves sites without a database server.
type BadgerStore struct {
	db     *badger.DB
	prefix []byte
}

// badgerLogger routes badger's log output through cclog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, v ...any)   { cclog.Errorf("badger: "+format, v...) }
func (badgerLogger) Warningf(format string, v ...any) { cclog.Warnf("badger: "+format, v...) }
func (badgerLogger) Infof(format string, v ...any)    { cclog.Debugf("badger: "+format, v...) }
func (badgerLogger) Debugf(format string, v ...any)   { cclog.Debugf("badger: "+format, v...) }

func OpenBadger(cfg Config) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Path).WithLogger(badgerLogger{})
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database %q: %w", cfg.Path, err)
	}
	return &BadgerStore{db: db, prefix: []byte(cfg.Collection + "/")}, nil
}

func (s *BadgerStore) key(id string) []byte {
	k := make([]byte, 0, len(s.prefix)+len(id))
	k = append(k, s.prefix...)
	return append(k, id...)
}

func (s *BadgerStore) Upsert(ctx context.Context, id string, doc json.RawMessage) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(id), append([]byte(nil), doc...))
	})
	if err != nil {
		return fmt.Errorf("upserting %q: %w", id, err)
	}
	return nil
}

func (s *BadgerStore) Get(ctx context.Context, id string) (json.RawMessage, error) {
	var doc []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(id))
		if err != nil {
			return err
		}
		doc, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", id, err)
	}
	return doc, nil
}

func (s *BadgerStore) List(ctx context.Context) ([]string, error) {
	ids := []string{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = s.prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(s.prefix); it.ValidForPrefix(s.prefix); it.Next() {
			k := it.Item().Key()
			ids = append(ids, string(k[len(s.prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return ids, nil
}

func (s *BadgerStore) Close(ctx context.Context) error {
	return s.db.Close()
}
