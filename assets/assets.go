// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package assets bundles the metric-schema documents shipped with supremm.
// Every file under schema/ holds exactly one document.
package assets

import "embed"

//go:embed schema/*.json
var FS embed.FS
