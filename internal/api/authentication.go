// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package api

import (
	"crypto/ed25519"
	"net/http"
	"strings"
	"sync"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/golang-jwt/jwt/v4"
)

// authHandler lets requests with a valid EdDSA signed bearer token through.
// Verified tokens are cached until their claims expire.
func authHandler(next http.Handler, publicKey ed25519.PublicKey) http.Handler {
	var lock sync.RWMutex
	cache := map[string]*jwt.Token{}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		return publicKey, nil
	}

	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rawtoken, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || rawtoken == "" {
			http.Error(rw, "Use JWT Authentication", http.StatusUnauthorized)
			return
		}

		lock.RLock()
		token, ok := cache[rawtoken]
		lock.RUnlock()
		if ok {
			if token.Claims.Valid() == nil {
				next.ServeHTTP(rw, r)
				return
			}
			lock.Lock()
			delete(cache, rawtoken)
			lock.Unlock()
		}

		token, err := jwt.Parse(rawtoken, keyFunc,
			jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))
		if err != nil {
			cclog.Debugf("rejected token from %s: %s", r.RemoteAddr, err.Error())
			http.Error(rw, err.Error(), http.StatusUnauthorized)
			return
		}

		lock.Lock()
		cache[rawtoken] = token
		lock.Unlock()

		next.ServeHTTP(rw, r)
	})
}
