// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package schema

import "github.com/santhosh-tekuri/jsonschema/v5"

var timeseriesSchema = `
{
  "type": "object",
  "description": "Timeseries metric dictionary.",
  "properties": {
    "_id": {
      "description": "Document identifier, for example 'timeseries-4'.",
      "type": "string",
      "minLength": 1
    },
    "type": {
      "description": "Document type tag.",
      "const": "timeseries"
    },
    "applies_to_version": {
      "description": "Timeseries format version the metrics apply to.",
      "type": "integer",
      "minimum": 0
    },
    "metrics": {
      "description": "Map of metric names to their descriptors.",
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "units": {
            "description": "Unit of the metric values.",
            "type": "string"
          },
          "description": {
            "description": "Short label.",
            "type": "string"
          },
          "help": {
            "description": "Help text, may contain HTML markup.",
            "type": "string"
          }
        },
        "required": ["units", "description", "help"],
        "additionalProperties": false
      }
    }
  },
  "required": ["_id", "type", "applies_to_version", "metrics"],
  "additionalProperties": false
}`

var summarySchema = `
{
  "type": "object",
  "description": "Summary statistics dictionary.",
  "definitions": {
    "leaf": {
      "type": "object",
      "properties": {
        "documentation": {
          "type": "string"
        },
        "type": {
          "description": "How the statistic was computed.",
          "enum": ["", "instant", "ratio"]
        },
        "unit": {
          "type": "string"
        }
      },
      "required": ["documentation", "type", "unit"],
      "additionalProperties": false
    },
    "node": {
      "oneOf": [
        { "$ref": "#/definitions/leaf" },
        {
          "type": "object",
          "not": {
            "anyOf": [
              { "required": ["documentation"] },
              { "required": ["type"] },
              { "required": ["unit"] }
            ]
          },
          "additionalProperties": { "$ref": "#/definitions/node" }
        }
      ]
    }
  },
  "properties": {
    "_id": {
      "description": "Document identifier, equal to summary_version.",
      "type": "string",
      "minLength": 1
    },
    "summary_version": {
      "description": "Revision tag of the definitions tree, for example 'summary-1.0.6'.",
      "type": "string",
      "minLength": 1
    },
    "definitions": {
      "type": "object",
      "additionalProperties": { "$ref": "#/definitions/node" }
    }
  },
  "required": ["_id", "summary_version", "definitions"],
  "additionalProperties": false
}`

var (
	timeseriesValidator = jsonschema.MustCompileString("timeseries.schema.json", timeseriesSchema)
	summaryValidator    = jsonschema.MustCompileString("summary.schema.json", summarySchema)
)
