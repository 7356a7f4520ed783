// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config holds the program configuration, the "main" section of
// config.json.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/ubccr/supremm/internal/store"
)

type Config struct {
	// Document store the schema documents are written to.
	Store store.Config `json:"store"`

	// Directory with schema documents replacing the bundled ones, optional.
	Documents string `json:"documents"`

	// Address the query API listens on, for example "localhost:8082"
	Addr string `json:"addr"`

	// If not the empty string, use https with this as the certificate file
	CertFile string `json:"https-cert-file"`

	// If not the empty string, use https with this as the key file
	KeyFile string `json:"https-key-file"`

	// Drop root permissions to this user and group once the port was taken
	User  string `json:"user"`
	Group string `json:"group"`

	// Base64 encoded Ed25519 public key. If set, the query API requires a JWT.
	JwtPublicKey string `json:"jwt-public-key"`

	// Subject apply events are published to, defaults to "supremm.schema".
	// The connection itself is configured in the nats section.
	NatsSubject string `json:"nats-subject"`

	Debug struct {
		EnableGops bool `json:"gops"`
	} `json:"debug"`
}

const DefaultAddr = "localhost:8082"

var Keys = Config{Addr: DefaultAddr}

// Init validates the main section and decodes it into Keys. A nil section
// keeps the defaults.
func Init(rawConfig json.RawMessage) error {
	if rawConfig == nil {
		return nil
	}

	if err := Validate(configSchema, rawConfig); err != nil {
		return fmt.Errorf("main configuration: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(rawConfig))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&Keys); err != nil {
		return fmt.Errorf("decoding main configuration: %w", err)
	}
	return nil
}

// Validate checks instance against a JSON schema given as string.
func Validate(schema string, instance json.RawMessage) error {
	sch, err := jsonschema.CompileString("config.schema.json", schema)
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(instance))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	return sch.Validate(v)
}
