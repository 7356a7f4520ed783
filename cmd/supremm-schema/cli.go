// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package main provides the entry point for the SUPReMM schema registry loader.
// This file defines all command-line flags and their default values.
package main

import "flag"

const defaultConfigFile = "./config.json"

var (
	flagGops, flagVersion, flagLogDateTime, flagDryRun, flagServe, flagDev bool
	flagConfigFile, flagLogLevel, flagDir, flagURI                         string
)

func cliInit() {
	flag.BoolVar(&flagGops, "gops", false, "Listen via github.com/google/gops/agent (for debugging)")
	flag.BoolVar(&flagVersion, "version", false, "Show version information and exit")
	flag.BoolVar(&flagLogDateTime, "logdate", false, "Set this flag to add date and time to log messages")
	flag.BoolVar(&flagDryRun, "dry-run", false, "Validate the schema documents without writing to the store")
	flag.BoolVar(&flagServe, "serve", false, "Serve the schema registry read-only over HTTP instead of applying documents")
	flag.BoolVar(&flagDev, "dev", false, "Enable development component: Swagger UI")
	flag.StringVar(&flagConfigFile, "config", defaultConfigFile, "Specify alternative path to `config.json`")
	flag.StringVar(&flagLogLevel, "loglevel", "info", "Sets the logging level: `[debug, info (default), warn, err, crit]`")
	flag.StringVar(&flagDir, "dir", "", "Read schema documents from this `directory` instead of the bundled ones")
	flag.StringVar(&flagURI, "uri", "", "Override the store connection `URI` of the configuration")
	flag.Parse()
}
