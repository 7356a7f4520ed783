// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"sync"
	"syscall"

	ccconf "github.com/ClusterCockpit/cc-lib/v2/ccConfig"
	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/ClusterCockpit/cc-lib/v2/runtime"
	"github.com/google/gops/agent"
	"github.com/ubccr/supremm/internal/config"
	"github.com/ubccr/supremm/internal/loader"
	"github.com/ubccr/supremm/internal/notify"
	"github.com/ubccr/supremm/internal/schema"
	"github.com/ubccr/supremm/internal/store"
)

var (
	date    string
	commit  string
	version string
)

// nats section of config.json, nil if absent
var natsConfig json.RawMessage

func printVersion() {
	fmt.Printf("Version:\t%s\n", version)
	fmt.Printf("Git hash:\t%s\n", commit)
	fmt.Printf("Build time:\t%s\n", date)
}

func initGops() error {
	if !flagGops && !config.Keys.Debug.EnableGops {
		return nil
	}

	if err := agent.Listen(agent.Options{}); err != nil {
		return fmt.Errorf("starting gops agent: %w", err)
	}
	return nil
}

func initConfiguration() error {
	if _, err := os.Stat(flagConfigFile); err != nil {
		// Without a config file the defaults point at a local MongoDB.
		if !errors.Is(err, fs.ErrNotExist) || flagConfigFile != defaultConfigFile {
			return fmt.Errorf("reading configuration: %w", err)
		}
		cclog.Infof("%s not found, using default configuration", flagConfigFile)
	} else {
		ccconf.Init(flagConfigFile)
		if err := config.Init(ccconf.GetPackageConfig("main")); err != nil {
			return err
		}
		natsConfig = ccconf.GetPackageConfig("nats")
	}

	if flagURI != "" {
		config.Keys.Store.URI = flagURI
	}
	if flagDir != "" {
		config.Keys.Documents = flagDir
	}
	return nil
}

// initNotifier connects the optional nats publisher. It returns nil if
// announcements are disabled or the server cannot be reached.
func initNotifier() *notify.Publisher {
	if natsConfig == nil || flagDryRun {
		return nil
	}

	pub, err := notify.Connect(natsConfig, config.Keys.NatsSubject)
	if err != nil {
		cclog.Warnf("initializing (optional) nats client: %s", err.Error())
		return nil
	}
	return pub
}

func readDocuments() ([]schema.Document, error) {
	if config.Keys.Documents != "" {
		cclog.Infof("reading schema documents from %s", config.Keys.Documents)
		return loader.ReadDir(config.Keys.Documents)
	}
	return loader.Bundled()
}

func runApply(ctx context.Context) error {
	docs, err := readDocuments()
	if err != nil {
		return err
	}

	var st store.Store
	if flagDryRun {
		st = store.NewMemoryStore()
	} else {
		if st, err = store.Open(ctx, config.Keys.Store); err != nil {
			return fmt.Errorf("opening %s store: %w", config.Keys.Store.WithDefaults().Kind, err)
		}
	}
	defer st.Close(context.Background())

	l := &loader.Loader{Store: st, DryRun: flagDryRun}

	if pub := initNotifier(); pub != nil {
		defer notify.Close()
		l.Notifier = pub
	}

	if err := l.Apply(ctx, docs); err != nil {
		return err
	}

	if flagDryRun {
		cclog.Printf("%d schema documents are valid", len(docs))
	} else {
		cclog.Printf("Successfully applied %d schema documents", len(docs))
	}
	return nil
}

func runServer(ctx context.Context) error {
	var wg sync.WaitGroup

	st, err := store.Open(ctx, config.Keys.Store)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", config.Keys.Store.WithDefaults().Kind, err)
	}

	srv, err := NewServer(st)
	if err != nil {
		st.Close(ctx)
		return fmt.Errorf("creating server: %w", err)
	}

	// Channel to collect errors from server
	errChan := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Handle shutdown signals
	wg.Add(1)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer wg.Done()
		select {
		case <-sigs:
			cclog.Info("Shutdown signal received")
		case <-ctx.Done():
		}

		runtime.SystemdNotify(false, "Shutting down ...")
		srv.Shutdown(ctx)
	}()

	runtime.SystemdNotify(true, "running")

	go func() {
		wg.Wait()
		close(errChan)
	}()

	if err := <-errChan; err != nil {
		return err
	}

	cclog.Print("Graceful shutdown completed!")
	return nil
}

func run() error {
	cliInit()

	if flagVersion {
		printVersion()
		return nil
	}

	cclog.Init(flagLogLevel, flagLogDateTime)

	// Load configuration first, gops may be enabled there
	if err := initConfiguration(); err != nil {
		return err
	}

	if err := initGops(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if flagServe {
		return runServer(ctx)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return runApply(ctx)
}

func main() {
	if err := run(); err != nil {
		cclog.Error(err.Error())
		os.Exit(1)
	}
}
