// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/ubccr/supremm/assets"
	"github.com/ubccr/supremm/internal/schema"
	"sigs.k8s.io/yaml"
)

var ErrDuplicateID = errors.New("duplicate document id")

// Read decodes every *.json, *.yaml and *.yml file below dir, one document
// per file, and returns the documents sorted by id. Other files are
// skipped.
func Read(fsys fs.FS, dir string) ([]schema.Document, error) {
	var docs []schema.Document
	seen := make(map[string]string)

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			cclog.Debugf("skipping %s", p)
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		if ext != ".json" {
			if data, err = yaml.YAMLToJSON(data); err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
		}

		doc, err := schema.Decode(data)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}

		id := doc.DocumentID()
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w %q in %s and %s", ErrDuplicateID, id, prev, p)
		}
		seen[id] = p
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading schema documents: %w", err)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].DocumentID() < docs[j].DocumentID()
	})
	return docs, nil
}

// Bundled returns the documents shipped with the binary.
func Bundled() ([]schema.Document, error) {
	return Read(assets.FS, "schema")
}

// ReadDir reads the documents below a directory of the local file system.
func ReadDir(dir string) ([]schema.Document, error) {
	return Read(os.DirFS(dir), ".")
}
