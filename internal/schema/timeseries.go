// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package schema

import "sort"

// MetricDescriptor documents one timeseries metric.
type MetricDescriptor struct {
	// Unit shown on plot axes, for example "GB/s".
	Units string `json:"units"`

	// Short human readable label.
	Description string `json:"description"`

	// Long form help text. May contain HTML markup.
	Help string `json:"help"`
}

// TimeseriesDocument lists the timeseries metrics available for job
// summaries of a given timeseries format version.
type TimeseriesDocument struct {
	ID               string                      `json:"_id"`
	Type             string                      `json:"type"`
	AppliesToVersion int                         `json:"applies_to_version"`
	Metrics          map[string]MetricDescriptor `json:"metrics"`
}

func (d *TimeseriesDocument) DocumentID() string { return d.ID }

func (d *TimeseriesDocument) Kind() Kind { return KindTimeseries }

// Metric returns the descriptor for name.
func (d *TimeseriesDocument) Metric(name string) (MetricDescriptor, bool) {
	m, ok := d.Metrics[name]
	return m, ok
}

// MetricNames returns the metric names in lexical order.
func (d *TimeseriesDocument) MetricNames() []string {
	names := make([]string, 0, len(d.Metrics))
	for name := range d.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
