// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps documents in process memory. It backs dry runs and
// tests.
type MemoryStore struct {
	lock sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (m *MemoryStore) Upsert(ctx context.Context, id string, doc json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, doc); err != nil {
		return fmt.Errorf("storing %q: %w", id, err)
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	m.docs[id] = buf.Bytes()
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (json.RawMessage, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(doc), nil
}

func (m *MemoryStore) List(ctx context.Context) ([]string, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Len returns the number of stored documents.
func (m *MemoryStore) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.docs)
}

func (m *MemoryStore) Close(ctx context.Context) error { return nil }
