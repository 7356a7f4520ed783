// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package schema

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Wildcard is the category key standing for every instance of a device,
// for example every GPU or every block device of a node.
const Wildcard = "*"

// StatisticType tells how a summary statistic was computed.
type StatisticType string

const (
	Untyped StatisticType = ""
	Instant StatisticType = "instant"
	Ratio   StatisticType = "ratio"
)

func (st *StatisticType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	switch StatisticType(str) {
	case Untyped, Instant, Ratio:
		*st = StatisticType(str)
	default:
		return fmt.Errorf("invalid statistic type: %#v", str)
	}
	return nil
}

// Statistic is a leaf of the summary definitions tree.
type Statistic struct {
	Documentation string        `json:"documentation"`
	Type          StatisticType `json:"type"`
	Unit          string        `json:"unit"`
}

// A node holding any of these keys is a leaf.
var leafKeys = []string{"documentation", "type", "unit"}

// Node is an entry of the summary definitions tree. Exactly one of Leaf and
// Children is set. Depth and shape vary per category.
type Node struct {
	Leaf     *Statistic
	Children map[string]*Node
}

func (n *Node) IsLeaf() bool { return n.Leaf != nil }

// Keys returns the child names in lexical order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, len(n.Children))
	for k := range n.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (n Node) MarshalJSON() ([]byte, error) {
	if n.Leaf != nil {
		return json.Marshal(n.Leaf)
	}
	if n.Children == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(n.Children)
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for _, k := range leafKeys {
		if _, ok := fields[k]; ok {
			leaf := &Statistic{}
			if err := decodeStrict(data, leaf); err != nil {
				return err
			}
			n.Leaf, n.Children = leaf, nil
			return nil
		}
	}

	n.Leaf = nil
	n.Children = make(map[string]*Node, len(fields))
	for name, raw := range fields {
		child := &Node{}
		if err := child.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		n.Children[name] = child
	}
	return nil
}

// SummaryDocument documents the fields of a job summary record. Its id
// equals its summary version.
type SummaryDocument struct {
	ID             string           `json:"_id"`
	SummaryVersion string           `json:"summary_version"`
	Definitions    map[string]*Node `json:"definitions"`
}

func (d *SummaryDocument) DocumentID() string { return d.ID }

func (d *SummaryDocument) Kind() Kind { return KindSummary }

// Lookup walks the definitions tree along path. A segment without an exact
// match falls back to the Wildcard entry of its level, so
// Lookup("gpu", "gpu0", "gpuactive") finds gpu.*.gpuactive. Empty segments
// never match.
func (d *SummaryDocument) Lookup(path ...string) (*Node, bool) {
	if len(path) == 0 {
		return nil, false
	}

	var node *Node
	children := d.Definitions
	for _, seg := range path {
		if seg == "" || children == nil {
			return nil, false
		}
		next, ok := children[seg]
		if !ok {
			next, ok = children[Wildcard]
		}
		if !ok {
			return nil, false
		}
		node = next
		children = node.Children
	}
	return node, true
}

// Categories returns the top level category names in lexical order.
func (d *SummaryDocument) Categories() []string {
	root := Node{Children: d.Definitions}
	return root.Keys()
}
