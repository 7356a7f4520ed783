// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/ubccr/supremm/internal/schema"
	"github.com/ubccr/supremm/internal/store"
)

// LookupResponse describes one entry of a schema document.
type LookupResponse struct {
	ID   string `json:"id"`
	Path string `json:"path"`

	// Set for timeseries documents
	Metric *schema.MetricDescriptor `json:"metric,omitempty"`

	// Set for summary documents. A statistic for leaves, the child names
	// otherwise.
	Statistic *schema.Statistic `json:"statistic,omitempty"`
	Children  []string          `json:"children,omitempty"`
}

func writeJSON(rw http.ResponseWriter, v any) {
	rw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(rw).Encode(v); err != nil {
		cclog.Errorf("writing response: %s", err.Error())
	}
}

func handleStoreError(rw http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(rw, err.Error(), http.StatusNotFound)
		return
	}
	cclog.Errorf("store: %s", err.Error())
	http.Error(rw, err.Error(), http.StatusInternalServerError)
}

func (a *API) handleList(rw http.ResponseWriter, r *http.Request) {
	ids, err := a.store.List(r.Context())
	if err != nil {
		handleStoreError(rw, err)
		return
	}
	writeJSON(rw, ids)
}

func (a *API) handleGet(rw http.ResponseWriter, r *http.Request) {
	doc, err := a.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleStoreError(rw, err)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.Write(doc)
}

func (a *API) handleLookup(rw http.ResponseWriter, r *http.Request) {
	id, path := r.PathValue("id"), r.PathValue("path")
	raw, err := a.store.Get(r.Context(), id)
	if err != nil {
		handleStoreError(rw, err)
		return
	}

	doc, err := schema.Decode(raw)
	if err != nil {
		cclog.Errorf("stored document %s: %s", id, err.Error())
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}

	res := LookupResponse{ID: id, Path: path}
	switch d := doc.(type) {
	case *schema.TimeseriesDocument:
		m, ok := d.Metric(path)
		if !ok {
			http.Error(rw, "unknown metric: "+path, http.StatusNotFound)
			return
		}
		res.Metric = &m
	case *schema.SummaryDocument:
		node, ok := d.Lookup(strings.Split(strings.Trim(path, "/"), "/")...)
		if !ok {
			http.Error(rw, "unknown summary path: "+path, http.StatusNotFound)
			return
		}
		if node.IsLeaf() {
			res.Statistic = node.Leaf
		} else {
			res.Children = node.Keys()
		}
	}
	writeJSON(rw, res)
}

func (a *API) handleHealth(rw http.ResponseWriter, r *http.Request) {
	if _, err := a.store.List(r.Context()); err != nil {
		http.Error(rw, err.Error(), http.StatusServiceUnavailable)
		return
	}
	rw.WriteHeader(http.StatusOK)
}
