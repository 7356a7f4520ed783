// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

var configSchema = `
{
  "type": "object",
  "properties": {
    "store": {
      "description": "Document store holding the schema collection.",
      "type": "object",
      "properties": {
        "kind": {
          "description": "Store backend.",
          "enum": ["memory", "mongodb", "postgres", "redis", "badger"]
        },
        "uri": {
          "description": "Connection string, for example 'mongodb://localhost:27017/supremm'.",
          "type": "string"
        },
        "database": {
          "description": "Database name. Defaults to the database of a mongodb URI, else 'supremm'.",
          "type": "string"
        },
        "collection": {
          "description": "Collection holding the schema documents. Defaults to 'schema'.",
          "type": "string"
        },
        "path": {
          "description": "Directory of the badger database. Empty keeps it in memory.",
          "type": "string"
        },
        "timeout": {
          "description": "Connect timeout, for example '10s'.",
          "type": "string"
        }
      },
      "additionalProperties": false
    },
    "documents": {
      "description": "Directory with schema documents (*.json, *.yaml) used instead of the bundled ones.",
      "type": "string"
    },
    "addr": {
      "description": "Address where the query API will listen on (for example: 'localhost:8082').",
      "type": "string"
    },
    "https-cert-file": {
      "description": "Filepath to SSL certificate. If also https-key-file is set, use HTTPS.",
      "type": "string"
    },
    "https-key-file": {
      "description": "Filepath to SSL key file. If also https-cert-file is set, use HTTPS.",
      "type": "string"
    },
    "user": {
      "description": "Drop root permissions once the port was taken. Only applicable if using privileged port.",
      "type": "string"
    },
    "group": {
      "description": "Drop root permissions once the port was taken. Only applicable if using privileged port.",
      "type": "string"
    },
    "debug": {
      "description": "Debug options.",
      "type": "object",
      "properties": {
        "gops": {
          "description": "Enable gops agent for debugging.",
          "type": "boolean"
        }
      }
    },
    "jwt-public-key": {
      "description": "Ed25519 public key for JWT verification.",
      "type": "string"
    },
    "nats-subject": {
      "description": "Subject schema events are published to. Defaults to 'supremm.schema'.",
      "type": "string"
    }
  }
}`
