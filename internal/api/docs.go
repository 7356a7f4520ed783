// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT License",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/schemas/": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns the ids of all stored schema documents in lexical order.",
                "produces": ["application/json"],
                "tags": ["schemas"],
                "summary": "List schema documents",
                "responses": {
                    "200": {
                        "description": "Document ids",
                        "schema": {"type": "array", "items": {"type": "string"}}
                    },
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "500": {"description": "Store error", "schema": {"type": "string"}}
                }
            }
        },
        "/schemas/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns the stored document as written by the loader.",
                "produces": ["application/json"],
                "tags": ["schemas"],
                "summary": "Get a schema document",
                "parameters": [
                    {"type": "string", "description": "Document id, for example timeseries-4", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Schema document", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "404": {"description": "Unknown id", "schema": {"type": "string"}}
                }
            }
        },
        "/schemas/{id}/lookup/{path}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Resolves a metric name of a timeseries document, or a slash separated category path of a summary document. A path segment without an exact match falls back to the '*' entry.",
                "produces": ["application/json"],
                "tags": ["schemas"],
                "summary": "Look up a metric or statistic",
                "parameters": [
                    {"type": "string", "description": "Document id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Metric name or category path, for example gpu/gpu0/gpuactive", "name": "path", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Descriptor", "schema": {"$ref": "#/definitions/api.LookupResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "404": {"description": "Unknown id or path", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "api.LookupResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "path": {"type": "string"},
                "metric": {"$ref": "#/definitions/schema.MetricDescriptor"},
                "statistic": {"$ref": "#/definitions/schema.Statistic"},
                "children": {"type": "array", "items": {"type": "string"}}
            }
        },
        "schema.MetricDescriptor": {
            "type": "object",
            "properties": {
                "units": {"type": "string"},
                "description": {"type": "string"},
                "help": {"type": "string"}
            }
        },
        "schema.Statistic": {
            "type": "object",
            "properties": {
                "documentation": {"type": "string"},
                "type": {"type": "string", "enum": ["", "instant", "ratio"]},
                "unit": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8082",
	BasePath:         "/api/",
	Schemes:          []string{},
	Title:            "supremm-schema query API",
	Description:      "Read-only access to the SUPReMM metric schema registry.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
