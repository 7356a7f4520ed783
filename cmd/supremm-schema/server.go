// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package main provides the entry point for the SUPReMM schema registry loader.
// This file contains the HTTP server of the read-only query API.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/ClusterCockpit/cc-lib/v2/runtime"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/ubccr/supremm/internal/api"
	"github.com/ubccr/supremm/internal/config"
	"github.com/ubccr/supremm/internal/store"
)

// Server encapsulates the HTTP server state and dependencies
type Server struct {
	router *http.ServeMux
	server *http.Server
	store  store.Store
}

// NewServer creates a Server answering queries from st. The server owns st
// and closes it on shutdown.
func NewServer(st store.Store) (*Server, error) {
	s := &Server{
		router: http.NewServeMux(),
		store:  st,
	}

	if err := api.New(st).MountRoutes(s.router, config.Keys.JwtPublicKey); err != nil {
		return nil, err
	}

	if flagDev {
		cclog.Print("Enable Swagger UI!")
		api.SwaggerInfo.Host = config.Keys.Addr
		s.router.HandleFunc("GET /swagger/", httpSwagger.Handler(
			httpSwagger.URL("http://"+config.Keys.Addr+"/swagger/doc.json")))
	}
	return s, nil
}

// Server timeout defaults (in seconds)
const (
	defaultReadTimeout  = 30
	defaultWriteTimeout = 30
)

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		ReadTimeout:  time.Duration(defaultReadTimeout) * time.Second,
		WriteTimeout: time.Duration(defaultWriteTimeout) * time.Second,
		Handler:      s.router,
		Addr:         config.Keys.Addr,
	}

	listener, err := net.Listen("tcp", config.Keys.Addr)
	if err != nil {
		return fmt.Errorf("starting listener on '%s': %w", config.Keys.Addr, err)
	}

	if config.Keys.CertFile != "" && config.Keys.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(config.Keys.CertFile, config.Keys.KeyFile)
		if err != nil {
			return fmt.Errorf("loading X509 keypair (check 'https-cert-file' and 'https-key-file' in config.json): %w", err)
		}
		listener = tls.NewListener(listener, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})
		cclog.Infof("HTTPS server listening at %s...", config.Keys.Addr)
	} else {
		cclog.Infof("HTTP server listening at %s...", config.Keys.Addr)
	}

	// The listener is bound before privileges are dropped so that a
	// privileged port works.
	if err := runtime.DropPrivileges(config.Keys.Group, config.Keys.User); err != nil {
		return fmt.Errorf("dropping privileges: %w", err)
	}

	if err = s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	// Wait for ongoing requests before the store goes away
	if s.server != nil {
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			cclog.Errorf("Server shutdown error: %v", err)
		}
	}

	if err := s.store.Close(shutdownCtx); err != nil {
		cclog.Errorf("Closing store: %v", err)
	}
}
