// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package api serves the schema registry read-only over HTTP.
package api

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/ubccr/supremm/internal/store"
)

type API struct {
	store store.Store
}

func New(st store.Store) *API {
	return &API{store: st}
}

// MountRoutes registers the handlers on r. If jwtPublicKey is not empty
// every /api/ route requires a token signed with the matching private key.
func (a *API) MountRoutes(r *http.ServeMux, jwtPublicKey string) error {
	routes := map[string]http.HandlerFunc{
		"GET /api/schemas/{$}":                   a.handleList,
		"GET /api/schemas/{id}":                  a.handleGet,
		"GET /api/schemas/{id}/lookup/{path...}": a.handleLookup,
	}

	if len(jwtPublicKey) > 0 {
		buf, err := base64.StdEncoding.DecodeString(jwtPublicKey)
		if err != nil {
			return fmt.Errorf("decoding jwt public key: %w", err)
		}
		if len(buf) != ed25519.PublicKeySize {
			return fmt.Errorf("jwt public key has %d bytes, want %d", len(buf), ed25519.PublicKeySize)
		}
		publicKey := ed25519.PublicKey(buf)
		for pattern, h := range routes {
			r.Handle(pattern, authHandler(h, publicKey))
		}
	} else {
		for pattern, h := range routes {
			r.HandleFunc(pattern, h)
		}
	}

	r.HandleFunc("GET /healthz", a.handleHealth)
	return nil
}
