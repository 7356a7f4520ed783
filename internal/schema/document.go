// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package schema holds the metric-schema documents kept in the schema
// registry: the timeseries metric dictionary and the nested summary
// statistics dictionary.
//
// Documents are decoded strictly. Every document is first checked against a
// JSON schema for its kind and then decoded into Go types that reject
// unknown fields, so a decoded document encodes back to the same content.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Kind tells the two document families apart.
type Kind string

const (
	KindTimeseries Kind = "timeseries"
	KindSummary    Kind = "summary"
)

var (
	ErrNotObject       = errors.New("document is not a JSON object")
	ErrUnknownKind     = errors.New("cannot determine document kind")
	ErrVersionMismatch = errors.New("summary _id and summary_version differ")
)

// Document is a schema document addressed by its id.
type Document interface {
	DocumentID() string
	Kind() Kind
}

// Decode parses and validates a single JSON encoded document.
func Decode(data []byte) (Document, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}

	switch kind := detectKind(obj); kind {
	case KindTimeseries:
		if err := validate(timeseriesValidator, raw); err != nil {
			return nil, err
		}
		doc := &TimeseriesDocument{}
		if err := decodeStrict(data, doc); err != nil {
			return nil, fmt.Errorf("decoding timeseries document: %w", err)
		}
		return doc, nil
	case KindSummary:
		if err := validate(summaryValidator, raw); err != nil {
			return nil, err
		}
		doc := &SummaryDocument{}
		if err := decodeStrict(data, doc); err != nil {
			return nil, fmt.Errorf("decoding summary document: %w", err)
		}
		if doc.ID != doc.SummaryVersion {
			return nil, fmt.Errorf("%w: %q != %q", ErrVersionMismatch, doc.ID, doc.SummaryVersion)
		}
		return doc, nil
	default:
		return nil, ErrUnknownKind
	}
}

// Encode returns the canonical JSON form of doc, the representation handed
// to every store backend.
func Encode(doc Document) (json.RawMessage, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document %q: %w", doc.DocumentID(), err)
	}
	return b, nil
}

func detectKind(obj map[string]any) Kind {
	if _, ok := obj["summary_version"]; ok {
		return KindSummary
	}
	if t, ok := obj["type"].(string); ok && t == string(KindTimeseries) {
		return KindTimeseries
	}
	return ""
}

func validate(s *jsonschema.Schema, v any) error {
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("validating document: %w", err)
	}
	return nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
