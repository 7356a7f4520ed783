// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func TestSwaggerDoc(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	rw := get(mux, "/swagger/doc.json", "")
	if rw.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rw.Code, rw.Body.String())
	}

	var doc struct {
		Swagger  string         `json:"swagger"`
		BasePath string         `json:"basePath"`
		Paths    map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json is not valid json: %v", err)
	}
	if doc.Swagger != "2.0" || doc.BasePath != "/api/" {
		t.Errorf("swagger %q, basePath %q", doc.Swagger, doc.BasePath)
	}

	var paths []string
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	want := []string{"/schemas/", "/schemas/{id}", "/schemas/{id}/lookup/{path}"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}
}
