// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package loader applies schema documents to a store. Each document is
// upserted by its id: an existing document with the same id is replaced as a
// whole, otherwise the document is inserted. Applying the same documents
// again leaves the store unchanged.
package loader

import (
	"context"
	"fmt"
	"time"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/google/uuid"
	"github.com/ubccr/supremm/internal/notify"
	"github.com/ubccr/supremm/internal/schema"
	"github.com/ubccr/supremm/internal/store"
)

// Notifier is told about every document written to the store.
type Notifier interface {
	Announce(ctx context.Context, ev notify.Event) error
}

type Loader struct {
	Store store.Store

	// Optional. Failed announcements are logged, they never fail Apply.
	Notifier Notifier

	// Validate and log only, the store is not touched.
	DryRun bool
}

// Apply upserts docs in order. It stops at the first store error and returns
// it; documents written before stay written.
func (l *Loader) Apply(ctx context.Context, docs []schema.Document) error {
	run := uuid.NewString()
	cclog.Debugf("apply run %s: %d documents", run, len(docs))

	for _, doc := range docs {
		id := doc.DocumentID()
		data, err := schema.Encode(doc)
		if err != nil {
			return err
		}

		if l.DryRun {
			cclog.Infof("dry run: would upsert %s document %s (%d bytes)", doc.Kind(), id, len(data))
			continue
		}

		if err := l.Store.Upsert(ctx, id, data); err != nil {
			return fmt.Errorf("applying %s: %w", id, err)
		}
		cclog.Infof("upserted %s document %s", doc.Kind(), id)

		if l.Notifier != nil {
			ev := notify.Event{Run: run, ID: id, Kind: string(doc.Kind()), Time: time.Now().UTC()}
			if err := l.Notifier.Announce(ctx, ev); err != nil {
				cclog.Warnf("announcing %s: %s", id, err.Error())
			}
		}
	}
	return nil
}
