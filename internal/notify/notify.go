// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package notify announces applied schema documents on a NATS subject, so
// consumers caching schema documents know when to reload them. It publishes
// on the shared cc-lib nats client configured by the "nats" section of
// config.json.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/ClusterCockpit/cc-lib/v2/nats"
)

const DefaultSubject = "supremm.schema"

var ErrNotConnected = errors.New("nats: client not connected")

// Client publishes raw messages. *nats.Client of cc-lib implements it.
type Client interface {
	Publish(subject string, data []byte) error
}

// Event is published once per document written to the store.
type Event struct {
	// Identifies the apply run, shared by all events of one run.
	Run  string    `json:"run"`
	ID   string    `json:"id"`
	Kind string    `json:"kind"`
	Time time.Time `json:"time"`
}

type Publisher struct {
	client  Client
	subject string
}

func New(client Client, subject string) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Publisher{client: client, subject: subject}
}

// Connect initializes the shared nats client from the nats section of
// config.json and returns a Publisher using it.
func Connect(rawConfig json.RawMessage, subject string) (*Publisher, error) {
	if err := nats.Init(rawConfig); err != nil {
		return nil, fmt.Errorf("nats configuration: %w", err)
	}
	nats.Connect()

	nc := nats.GetClient()
	if nc == nil {
		return nil, ErrNotConnected
	}

	p := New(nc, subject)
	cclog.Infof("publishing schema events to nats subject %q", p.subject)
	return p, nil
}

func (p *Publisher) Subject() string {
	return p.subject
}

func (p *Publisher) Announce(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := p.client.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publishing event for %q: %w", ev.ID, err)
	}
	return nil
}

// Close flushes pending events and closes the shared nats client.
func Close() {
	if nc := nats.GetClient(); nc != nil {
		nc.Close()
	}
}
