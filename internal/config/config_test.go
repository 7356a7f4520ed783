// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"testing"

	"github.com/ubccr/supremm/internal/store"
)

func reset() {
	Keys = Config{Addr: DefaultAddr}
}

func TestInit(t *testing.T) {
	defer reset()

	raw := json.RawMessage(`{
		"store": {
			"kind": "mongodb",
			"uri": "mongodb://db.example.org:27017/supremm",
			"collection": "schema",
			"timeout": "5s"
		},
		"addr": "0.0.0.0:8082",
		"jwt-public-key": "kzfYrYy+TzpanWZHJ5qSdMj5uKUWgq74BWhQG6copP0=",
		"debug": {"gops": true}
	}`)

	if err := Init(raw); err != nil {
		t.Fatal(err)
	}

	want := store.Config{
		Kind:       "mongodb",
		URI:        "mongodb://db.example.org:27017/supremm",
		Collection: "schema",
		Timeout:    "5s",
	}
	if Keys.Store != want {
		t.Errorf("store = %+v", Keys.Store)
	}
	if Keys.Addr != "0.0.0.0:8082" || !Keys.Debug.EnableGops || Keys.JwtPublicKey == "" {
		t.Errorf("keys = %+v", Keys)
	}
}

func TestInitKeepsDefaults(t *testing.T) {
	defer reset()

	if err := Init(nil); err != nil {
		t.Fatal(err)
	}
	if Keys.Addr != DefaultAddr {
		t.Errorf("addr = %q", Keys.Addr)
	}

	if err := Init(json.RawMessage(`{"store": {"kind": "badger", "path": "/var/lib/supremm"}}`)); err != nil {
		t.Fatal(err)
	}
	if Keys.Addr != DefaultAddr || Keys.Store.Kind != "badger" {
		t.Errorf("keys = %+v", Keys)
	}
}

func TestInitRejects(t *testing.T) {
	defer reset()

	tests := map[string]string{
		"unknown kind":        `{"store": {"kind": "couchdb"}}`,
		"unknown store field": `{"store": {"kind": "mongodb", "host": "localhost"}}`,
		"unknown field":       `{"listen": "localhost:8082"}`,
		"wrong type":          `{"addr": 8082}`,
		"not an object":       `[]`,
	}

	for name, raw := range tests {
		if err := Init(json.RawMessage(raw)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestNatsSubject(t *testing.T) {
	defer reset()

	if err := Init(json.RawMessage(`{"nats-subject": "xdmod.schema"}`)); err != nil {
		t.Fatal(err)
	}
	if Keys.NatsSubject != "xdmod.schema" {
		t.Errorf("got %q", Keys.NatsSubject)
	}
	if err := Init(json.RawMessage(`{"nats-subject": ["xdmod.schema"]}`)); err == nil {
		t.Error("expected an error for a non-string subject")
	}
}
