// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ubccr/supremm/assets"
)

func bundled(t *testing.T, name string) []byte {
	t.Helper()
	data, err := assets.FS.ReadFile("schema/" + name + ".json")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func generic(t *testing.T, data []byte) any {
	t.Helper()
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestDecodeBundled(t *testing.T) {
	for _, tc := range []struct {
		name string
		kind Kind
	}{
		{"timeseries-4", KindTimeseries},
		{"summary-1.0.5", KindSummary},
		{"summary-1.0.6", KindSummary},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data := bundled(t, tc.name)
			doc, err := Decode(data)
			if err != nil {
				t.Fatal(err)
			}
			if doc.DocumentID() != tc.name || doc.Kind() != tc.kind {
				t.Fatalf("got %s/%s, want %s/%s", doc.DocumentID(), doc.Kind(), tc.name, tc.kind)
			}

			// Nothing may be dropped or renamed on the way through the Go types.
			out, err := Encode(doc)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(generic(t, data), generic(t, out)); diff != "" {
				t.Errorf("re-encoded document differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTimeseriesMetrics(t *testing.T) {
	doc, err := Decode(bundled(t, "timeseries-4"))
	if err != nil {
		t.Fatal(err)
	}
	ts := doc.(*TimeseriesDocument)

	if ts.AppliesToVersion != 4 {
		t.Errorf("applies_to_version = %d", ts.AppliesToVersion)
	}

	m, ok := ts.Metric("cpuuser")
	if !ok || m.Units != "CPU %" || m.Description != "CPU User" {
		t.Errorf("cpuuser = %+v, %v", m, ok)
	}
	if _, ok := ts.Metric("nope"); ok {
		t.Error("unexpected metric")
	}

	names := ts.MetricNames()
	if len(names) != len(ts.Metrics) || names[0] != "block" {
		t.Errorf("names = %v", names)
	}
}

func TestSummaryLookup(t *testing.T) {
	doc, err := Decode(bundled(t, "summary-1.0.6"))
	if err != nil {
		t.Fatal(err)
	}
	sd := doc.(*SummaryDocument)

	tests := []struct {
		path []string
		ok   bool
		leaf bool
		unit string
	}{
		{[]string{"cpuperf", "flops"}, true, true, "op"},
		{[]string{"gpu", "gpu0", "gpuactive"}, true, true, "%"},
		{[]string{"gpu", "*", "gpuactive"}, true, true, "%"},
		{[]string{"rapl", "power", "pkg"}, true, true, "Watts"},
		{[]string{"rapl"}, true, false, ""},
		{[]string{"rapl", "power", "pkg", "deeper"}, false, false, ""},
		{[]string{"cpuperf", "missing"}, false, false, ""},
		{[]string{}, false, false, ""},
		{[]string{"gpu", "", "gpuactive"}, false, false, ""},
		{[]string{""}, false, false, ""},
	}

	for _, tc := range tests {
		n, ok := sd.Lookup(tc.path...)
		if ok != tc.ok {
			t.Errorf("%v: ok = %v, want %v", tc.path, ok, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		if n.IsLeaf() != tc.leaf {
			t.Errorf("%v: leaf = %v", tc.path, n.IsLeaf())
			continue
		}
		if tc.leaf && n.Leaf.Unit != tc.unit {
			t.Errorf("%v: unit = %q, want %q", tc.path, n.Leaf.Unit, tc.unit)
		}
	}

	if got := sd.Categories(); len(got) != len(sd.Definitions) || got[0] != "block" {
		t.Errorf("categories = %v", got)
	}
}

func TestStatisticTypes(t *testing.T) {
	doc, err := Decode(bundled(t, "summary-1.0.6"))
	if err != nil {
		t.Fatal(err)
	}
	sd := doc.(*SummaryDocument)

	n, _ := sd.Lookup("cpuperf", "cpiref")
	if n.Leaf.Type != Ratio {
		t.Errorf("cpiref type = %q", n.Leaf.Type)
	}
	n, _ = sd.Lookup("lnet")
	if n.Leaf.Type != Untyped {
		t.Errorf("lnet type = %q", n.Leaf.Type)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"array", `[1, 2]`, ErrNotObject},
		{"unknown kind", `{"_id": "x", "type": "other"}`, ErrUnknownKind},
		{"version mismatch", `{"_id": "summary-1", "summary_version": "summary-2", "definitions": {}}`, ErrVersionMismatch},
		{"syntax", `{"_id": `, nil},
		{"missing metrics", `{"_id": "timeseries-4", "type": "timeseries", "applies_to_version": 4}`, nil},
		{"unknown top level field", `{"_id": "timeseries-4", "type": "timeseries", "applies_to_version": 4, "metrics": {}, "extra": 1}`, nil},
		{"fractional version", `{"_id": "timeseries-4", "type": "timeseries", "applies_to_version": 4.5, "metrics": {}}`, nil},
		{"metric missing help", `{"_id": "t", "type": "timeseries", "applies_to_version": 1, "metrics": {"cpuuser": {"units": "%", "description": "x"}}}`, nil},
		{"bad statistic type", `{"_id": "s", "summary_version": "s", "definitions": {"a": {"documentation": "", "type": "mean", "unit": ""}}}`, nil},
		{"leaf with extra key", `{"_id": "s", "summary_version": "s", "definitions": {"a": {"documentation": "", "type": "", "unit": "", "x": ""}}}`, nil},
		{"non string leaf", `{"_id": "s", "summary_version": "s", "definitions": {"a": {"b": {"documentation": 1, "type": "", "unit": ""}}}}`, nil},
		{"scalar category", `{"_id": "s", "summary_version": "s", "definitions": {"a": "text"}}`, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNodeShapes(t *testing.T) {
	input := `{
		"_id": "summary-test",
		"summary_version": "summary-test",
		"definitions": {
			"empty": {},
			"deep": {"a": {"b": {"*": {"c": {"documentation": "d", "type": "instant", "unit": "u"}}}}}
		}
	}`

	doc, err := Decode([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	sd := doc.(*SummaryDocument)

	n, ok := sd.Lookup("deep", "a", "b", "any", "c")
	if !ok || !n.IsLeaf() || n.Leaf.Documentation != "d" {
		t.Fatalf("deep lookup = %+v, %v", n, ok)
	}

	n, ok = sd.Lookup("empty")
	if !ok || n.IsLeaf() || len(n.Children) != 0 {
		t.Fatalf("empty lookup = %+v, %v", n, ok)
	}

	out, err := Encode(sd)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(generic(t, []byte(input)), generic(t, out)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
